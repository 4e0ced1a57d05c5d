package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		start       *Config
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://10.0.0.1:9000", "-t", "3", "-i", "10", "-d", "/tmp/s.db", "-l", "debug", "-f", "json", "-u"},
			expected: &Config{
				ServerBaseURL:       "http://10.0.0.1:9000",
				RequestTimeout:      3 * time.Second,
				OnlineCheckInterval: 10 * time.Second,
				DatabaseFile:        "/tmp/s.db",
				LogLevel:            "debug",
				LogFormat:           "json",
				UnwrapLoginEnvelope: true,
			},
		},
		{
			name: "foreign flags are ignored",
			args: []string{"-c", "conf.json", "-a", "http://h:1"},
			expected: &Config{
				ServerBaseURL: "http://h:1",
			},
		},
		{
			name: "unset duration flags keep sub-second values",
			args: []string{"-l", "warn"},
			start: &Config{
				RequestTimeout:      1500 * time.Millisecond,
				OnlineCheckInterval: 500 * time.Millisecond,
			},
			expected: &Config{
				RequestTimeout:      1500 * time.Millisecond,
				OnlineCheckInterval: 500 * time.Millisecond,
				LogLevel:            "warn",
			},
		},
		{
			name: "explicit duration flags override",
			args: []string{"-t", "2", "-i", "0"},
			start: &Config{
				RequestTimeout:      1500 * time.Millisecond,
				OnlineCheckInterval: 500 * time.Millisecond,
			},
			expected: &Config{
				RequestTimeout:      2 * time.Second,
				OnlineCheckInterval: 0,
			},
		},
		{
			name:        "incorrect timeout",
			args:        []string{"-t", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			if tt.start != nil {
				*cfg = *tt.start
			}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}

			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
