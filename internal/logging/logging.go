// Package logging builds the structured logger used across firstwords.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures New. Zero values select info level, text output and
// stderr.
type Options struct {
	Level  string
	Format string
	Writer io.Writer
}

// ParseLevel maps a level name (case-insensitive) to a slog.Level. An empty
// name is info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// New returns a logger configured from opts. An invalid level or format is
// reported as an error together with a usable info-level text logger, so
// callers may warn and continue.
func New(opts Options) (*slog.Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level, levelErr := ParseLevel(opts.Level)
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", FormatText:
		handler = slog.NewTextHandler(w, handlerOpts)
	case FormatJSON:
		handler = slog.NewJSONHandler(w, handlerOpts)
	default:
		logger := slog.New(slog.NewTextHandler(w, handlerOpts))
		return logger, fmt.Errorf("unknown log format %q", opts.Format)
	}

	logger := slog.New(handler)
	if levelErr != nil {
		return logger, levelErr
	}
	return logger, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
