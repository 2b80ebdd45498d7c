// Package logging builds the zerolog logger used by the CLI.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel keeps diagnostics off the terminal unless asked for.
const DefaultLevel = zerolog.ErrorLevel

// ParseLevel returns the level named by s, or DefaultLevel when s is empty or
// unknown.
func ParseLevel(s string) zerolog.Level {
	if s == "" {
		return DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return DefaultLevel
	}
	return lvl
}

// New returns a human-readable logger writing to w at the given level.
func New(w io.Writer, level string) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(out).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}
