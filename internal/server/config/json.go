package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/worktime/internal/flagx"
	"github.com/dmitrijs2005/worktime/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Durations use
// timex.Duration, so both "10s" and integer nanoseconds are accepted.
type JsonConfig struct {
	HTTPAddr        string         `json:"http_addr"`
	GRPCAddr        string         `json:"grpc_addr"`
	DatabaseDSN     string         `json:"database_dsn"`
	StaticDir       string         `json:"static_dir"`
	LogBackend      string         `json:"log_backend"`
	LogLevel        string         `json:"log_level"`
	LogFile         string         `json:"log_file"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads the file named by -c/-config in args and copies every
// field it sets into config. Without the flag nothing happens. An unreadable
// or invalid file panics.
func parseJson(config *Config, args []string) {
	jsonConfigFile := flagx.JSONConfigPath(args)

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIfNotEmpty(&config.HTTPAddr, c.HTTPAddr)
	setIfNotEmpty(&config.GRPCAddr, c.GRPCAddr)
	setIfNotEmpty(&config.DatabaseDSN, c.DatabaseDSN)
	setIfNotEmpty(&config.StaticDir, c.StaticDir)
	setIfNotEmpty(&config.LogBackend, c.LogBackend)
	setIfNotEmpty(&config.LogLevel, c.LogLevel)
	setIfNotEmpty(&config.LogFile, c.LogFile)
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
