// Package logging builds the application's zerolog logger: human-readable
// console output for interactive use, structured JSON otherwise.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger construction options.
type Config struct {
	// Level is the minimum level to emit (trace, debug, info, warn, error).
	// Unknown values fall back to info.
	Level string

	// Format is "console" or "json".
	Format string
}

// New builds a logger writing to stderr according to cfg.
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter builds a logger writing to w; the console format wraps w in
// zerolog's ConsoleWriter.
func NewWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	level := parseLevel(cfg.Level)

	if cfg.Format != "json" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "", "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
