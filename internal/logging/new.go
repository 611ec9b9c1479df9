package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// Options selects and tunes a logger backend.
type Options struct {
	Backend string // "slog" (default) or "zap"
	Level   string // debug, info, warn, error
	File    string // when set, JSON lines also go to this rotating file

	// Stdout replaces os.Stdout as the console destination.
	Stdout io.Writer
}

// New builds a Logger from opts. The returned func flushes and releases the
// log file; it is safe to call when no file is configured.
func New(opts Options) (Logger, func() error, error) {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	var rotator *lumberjack.Logger
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log dir: %w", err)
		}
		rotator = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    100, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	closeFile := func() error {
		if rotator == nil {
			return nil
		}
		return rotator.Close()
	}

	switch strings.ToLower(opts.Backend) {
	case "", BackendSlog:
		var level slog.Level
		if err := level.UnmarshalText([]byte(levelOrDefault(opts.Level))); err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		w := out
		if rotator != nil {
			w = io.MultiWriter(out, rotator)
		}
		return newJSONSlogLogger(w, level), closeFile, nil

	case BackendZap:
		level, err := zapcore.ParseLevel(levelOrDefault(opts.Level))
		if err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}

		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder := zapcore.NewJSONEncoder(encoderConfig)

		cores := []zapcore.Core{zapcore.NewCore(encoder, zapcore.AddSync(out), level)}
		if rotator != nil {
			cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), level))
		}

		zl := NewZapLogger(zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zapcore.ErrorLevel)))
		return zl, func() error {
			_ = zl.Sync()
			return closeFile()
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}

func levelOrDefault(level string) string {
	if level == "" {
		return "info"
	}
	return strings.ToLower(level)
}
