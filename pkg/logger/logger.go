package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/olive-branch-content-api/internal/config"
	"github.com/rs/zerolog"
)

// ServiceName is stamped on every log line
const ServiceName = "olive-branch-content-api"

// New creates a new zerolog logger with structured output on stdout
func New(cfg config.LogConfig, env string) zerolog.Logger {
	return NewWithWriter(os.Stdout, cfg, env)
}

// NewWithWriter is New over an arbitrary writer
func NewWithWriter(w io.Writer, cfg config.LogConfig, env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	// Use pretty console output in development
	if cfg.Format == "pretty" || env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			Level(ParseLevel(cfg.Level)).
			With().
			Timestamp().
			Caller().
			Str("service", ServiceName).
			Logger()
	}

	// JSON output for production
	return zerolog.New(w).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", ServiceName).
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
