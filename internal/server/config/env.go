package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from environment variables. Variables may also
// come from the dotenv file at path; the real environment wins.
//
// PORT and DB_PATH are accepted for compatibility with existing deployments;
// the WORKTIME_* names take precedence over them.
func parseEnv(config *Config, path string) error {
	fileVals, err := godotenv.Read(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", path, err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok && v != ""
	}

	if v, ok := lookup("PORT"); ok {
		config.HTTPAddr = ":" + v
	}
	if v, ok := lookup("DB_PATH"); ok {
		config.DatabaseDSN = v
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"WORKTIME_HTTP_ADDR", &config.HTTPAddr},
		{"WORKTIME_GRPC_ADDR", &config.GRPCAddr},
		{"WORKTIME_DATABASE_DSN", &config.DatabaseDSN},
		{"WORKTIME_STATIC_DIR", &config.StaticDir},
		{"WORKTIME_LOG_BACKEND", &config.LogBackend},
		{"WORKTIME_LOG_LEVEL", &config.LogLevel},
		{"WORKTIME_LOG_FILE", &config.LogFile},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok {
			*s.dst = v
		}
	}

	if v, ok := lookup("WORKTIME_SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("WORKTIME_SHUTDOWN_TIMEOUT: %w", err)
		}
		config.ShutdownTimeout = d
	}

	return nil
}
