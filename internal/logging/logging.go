package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the on-wire shape of log records.
type Format string

const (
	// FormatCompact renders one human-readable line per record.
	FormatCompact Format = "compact"
	// FormatJSON renders records via slog's standard JSON handler.
	FormatJSON Format = "json"
)

// Environment variables consulted by [FromEnv].
const (
	envLevel  = "MATHPROSE_LOG_LEVEL"
	envFormat = "MATHPROSE_LOG_FORMAT"
)

// Options configures [New]. Zero values fall back to stderr output, compact
// format, and level info.
type Options struct {
	Level  slog.Level
	Format Format
	Output io.Writer
}

// FromEnv builds Options from MATHPROSE_LOG_LEVEL and MATHPROSE_LOG_FORMAT.
// Unknown values are ignored and the defaults kept.
func FromEnv() Options {
	opts := Options{Format: FormatCompact, Level: slog.LevelInfo}
	if lvl, err := ParseLevel(os.Getenv(envLevel)); err == nil {
		opts.Level = lvl
	}
	if f := strings.ToLower(os.Getenv(envFormat)); f == string(FormatJSON) {
		opts.Format = FormatJSON
	}
	return opts
}

// ParseLevel converts a level name (debug, info, warn, error, any case) to a
// slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// New builds a slog.Logger from opts.
func New(opts Options) *slog.Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(opts.Output, &slog.HandlerOptions{Level: opts.Level}))
	}
	return slog.New(NewCompactHandler(opts.Output, opts.Level))
}
