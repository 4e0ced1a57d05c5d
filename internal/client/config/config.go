package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the authshell client.
type Config struct {
	// ServerBaseURL is the scheme://host:port of the authentication API.
	ServerBaseURL string `env:"AUTHSHELL_SERVER_BASE_URL"`
	// RequestTimeout bounds a single API round trip.
	RequestTimeout time.Duration `env:"AUTHSHELL_REQUEST_TIMEOUT"`
	// OnlineCheckInterval is how often the shell probes the backend.
	OnlineCheckInterval time.Duration `env:"AUTHSHELL_ONLINE_CHECK_INTERVAL"`
	// DatabaseFile is the SQLite file used as durable storage.
	DatabaseFile string `env:"AUTHSHELL_DATABASE_FILE"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"AUTHSHELL_LOG_LEVEL"`
	// LogFormat is text or json.
	LogFormat string `env:"AUTHSHELL_LOG_FORMAT"`
	// UnwrapLoginEnvelope makes login expect {user, token} like registration
	// and persist the token. Off by default: login stores the whole body.
	UnwrapLoginEnvelope bool `env:"AUTHSHELL_UNWRAP_LOGIN_ENVELOPE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.DatabaseFile = "authshell.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.UnwrapLoginEnvelope = false
}

// LoadConfig constructs a Config from defaults, then the JSON file (if any),
// then AUTHSHELL_* environment variables, then command-line flags. Later
// sources take precedence.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
