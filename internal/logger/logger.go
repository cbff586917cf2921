package logger

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// New returns a logger writing to w. format is "json" for JSON records or
// "text" for human-readable tint output; noColor disables ANSI colors.
func New(w io.Writer, format string, level slog.Level, noColor bool) *slog.Logger {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    noColor,
		})
	}
	return slog.New(handler)
}

// Initialize builds a logger with New and installs it as the slog default.
func Initialize(w io.Writer, format, level string, noColor bool) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := New(w, format, lvl, noColor)
	slog.SetDefault(logger)
	logger.Debug("logger initialized", "format", format, "level", lvl)
	return logger, nil
}

// ParseLevel converts a level name such as "debug" or "warn" to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}
