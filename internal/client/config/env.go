package config

import (
	"github.com/caarlos0/env/v11"
)

// parseEnv overlays cfg with the AUTHSHELL_* variables named in the struct
// tags. Unset variables leave fields alone. Panics on malformed values.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
