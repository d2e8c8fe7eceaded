// Package logging builds the zerolog loggers used across the program.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel applies when no level is configured or the configured one is invalid.
const DefaultLevel = zerolog.WarnLevel

// ParseLevel maps a level name to a zerolog level. Empty means DefaultLevel.
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return DefaultLevel, nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return DefaultLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// New returns a logger writing to w. pretty switches to a human-readable console format.
func New(w io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = DefaultLevel
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// OpenFile opens path for appending, creating its directory.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
