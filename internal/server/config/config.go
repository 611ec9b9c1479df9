// Package config handles configuration for the server component: defaults,
// then environment (including a .env file), then an optional JSON file, then
// command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/worktime/internal/common"
)

// Config holds runtime settings for the worktime server.
//
// Fields:
//   - HTTPAddr: bind address of the REST API.
//   - GRPCAddr: bind address of the gRPC health endpoint; empty disables it.
//   - DatabaseDSN: SQLite path/URI, or a postgres:// URL.
//   - StaticDir: directory with the frontend build; empty disables serving it.
//   - LogBackend / LogLevel / LogFile: see logging.Options.
//   - ShutdownTimeout: how long in-flight requests may drain on stop.
type Config struct {
	HTTPAddr        string
	GRPCAddr        string
	DatabaseDSN     string
	StaticDir       string
	LogBackend      string
	LogLevel        string
	LogFile         string
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":3000"
	c.GRPCAddr = ""
	c.DatabaseDSN = common.DefaultDatabaseDSN
	c.StaticDir = ""
	c.LogBackend = "slog"
	c.LogLevel = "info"
	c.LogFile = ""
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config from defaults, the environment, an optional
// JSON file (-c/-config) and finally the command-line flags in args
// (usually os.Args[1:]). Unreadable sources panic.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg, ".env"); err != nil {
		panic(err)
	}
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
