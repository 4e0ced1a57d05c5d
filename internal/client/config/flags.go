package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/authshell/internal/flagx"
)

// parseFlags overlays cfg with the flags listed in the package doc.
// Other arguments are filtered out first so the JSON loader's -c flag does
// not trip this FlagSet. Panics on malformed values.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-i", "-d", "-l", "-f", "-u"}, "-u")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the authentication API")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DatabaseFile, "d", cfg.DatabaseFile, "local storage file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text or json)")
	fs.BoolVar(&cfg.UnwrapLoginEnvelope, "u", cfg.UnwrapLoginEnvelope, "expect {user, token} on login")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// durations from earlier sources may be sub-second; only explicit flags win
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
}
