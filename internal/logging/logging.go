// Package logging builds the process-wide slog handler.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Level is shared by every logger created by New so the level can be
// changed at runtime.
var Level = new(slog.LevelVar)

// ParseLevel converts "debug", "info", "warn" or "error" to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return l, nil
}

// New returns a logger writing to w. Format "json" selects slog's JSON
// handler; anything else a colourised console handler.
func New(w io.Writer, format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: Level}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      Level,
		TimeFormat: time.TimeOnly,
	}))
}

// Setup installs a logger as slog's default and sets the level.
func Setup(w io.Writer, format, level string) (*slog.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	Level.Set(l)

	logger := New(w, format)
	slog.SetDefault(logger)
	return logger, nil
}
