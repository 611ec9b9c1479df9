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
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-g", ":50051", "-d", "db.sqlite", "-s", "./web",
				"-b", "zap", "-l", "debug", "-f", "/var/log/worktime.log", "-t", "30s",
			},
			expected: &Config{
				HTTPAddr:        "127.0.0.1:9090",
				GRPCAddr:        ":50051",
				DatabaseDSN:     "db.sqlite",
				StaticDir:       "./web",
				LogBackend:      "zap",
				LogLevel:        "debug",
				LogFile:         "/var/log/worktime.log",
				ShutdownTimeout: 30 * time.Second,
			},
		},
		{
			name: "config flag and unknown flags are ignored",
			args: []string{"-c", "cfg.json", "-x", "1", "-a", ":8081"},
			expected: &Config{
				HTTPAddr: ":8081",
			},
		},
		{
			name:        "bad duration",
			args:        []string{"-t", "forever"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config, tt.args) })
				assert.Empty(t, cmp.Diff(tt.expected, config))
			} else {
				require.Panics(t, func() { parseFlags(config, tt.args) })
			}
		})
	}
}
