package config

import (
	"flag"

	"github.com/dmitrijs2005/worktime/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     HTTP bind address (e.g. ":3000")
//	-g string     gRPC health bind address; empty disables it
//	-d string     database DSN (SQLite path or postgres:// URL)
//	-s string     static frontend directory
//	-b string     log backend: slog | zap
//	-l string     log level
//	-f string     rotating log file
//	-t duration   shutdown timeout (e.g. "15s")
//
// Only these flags are taken from args (see flagx.FilterArgs), so -c/-config
// and unrelated flags do not collide. A malformed value panics.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-b", "-l", "-f", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port to run server")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC health address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.StaticDir, "s", config.StaticDir, "static frontend directory")
	fs.StringVar(&config.LogBackend, "b", config.LogBackend, "log backend (slog|zap)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFile, "f", config.LogFile, "log file")
	fs.DurationVar(&config.ShutdownTimeout, "t", config.ShutdownTimeout, "shutdown timeout")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
