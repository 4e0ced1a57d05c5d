// Package flagx helps several loaders share one command line: each loader
// picks out only the flags it owns before handing them to a flag.FlagSet.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// ConfigEnvVar names the environment variable consulted when no -c/-config
// flag is given.
const ConfigEnvVar = "AUTHSHELL_CONFIG"

// FilterArgs returns the subset of args made of allowed flags and their
// values, in the original order.
//
// Accepted forms are "-f value" and "-f=value". A flag listed in boolFlags
// never consumes the following token, so "-u -a addr" keeps "-a addr" for
// the next flag. The result is never nil.
func FilterArgs(args []string, allowed []string, boolFlags ...string) []string {
	known := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		known[f] = false
	}
	for _, f := range boolFlags {
		if _, ok := known[f]; ok {
			known[f] = true
		}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, found := strings.Cut(arg, "="); found && strings.HasPrefix(arg, "-") {
			if _, ok := known[name]; ok {
				out = append(out, arg)
			}
			continue
		}

		isBool, ok := known[arg]
		if !ok {
			continue
		}
		out = append(out, arg)
		if isBool {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigPath returns the JSON config path given with -c or -config in args
// (the last one wins), falling back to $AUTHSHELL_CONFIG. Empty means no
// config file.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	if path == "" {
		path = os.Getenv(ConfigEnvVar)
	}
	return path
}
