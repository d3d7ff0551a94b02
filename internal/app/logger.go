package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logging defaults used when Config leaves a field empty. They keep info
// records off the terminal so only the result table reaches stdout.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// parseLogLevel maps debug, info, warn and error, in any case, to a level.
func parseLogLevel(s string) (slog.Level, error) {
	if s == "" {
		s = DefaultLogLevel
	}
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", s)
	}
}

// newLogger builds an isolated logger writing text or JSON records to w.
// Every record carries app=xspec. The global logger is left untouched.
func newLogger(level, format string, w io.Writer) (*slog.Logger, error) {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = DefaultLogFormat
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	switch strings.ToLower(format) {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", format)
	}
	return slog.New(handler).With("app", "xspec"), nil
}
