package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/authshell/internal/flagx"
	"github.com/dmitrijs2005/authshell/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields tell
// "absent" apart from zero values.
type JsonConfig struct {
	ServerBaseURL       *string         `json:"server_base_url"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	DatabaseFile        *string         `json:"database_file"`
	LogLevel            *string         `json:"log_level"`
	LogFormat           *string         `json:"log_format"`
	UnwrapLoginEnvelope *bool           `json:"unwrap_login_envelope"`
}

// parseJson overlays cfg with the file named by -c/-config or
// $AUTHSHELL_CONFIG. It is a no-op when neither is set and panics on read or
// decode errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.DatabaseFile != nil {
		cfg.DatabaseFile = *jc.DatabaseFile
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	if jc.UnwrapLoginEnvelope != nil {
		cfg.UnwrapLoginEnvelope = *jc.UnwrapLoginEnvelope
	}
}
