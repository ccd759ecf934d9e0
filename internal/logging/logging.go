package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Levels accepted in LOG_LEVEL. fatal and trace collapse onto slog's nearest level.
var Levels = []string{"fatal", "error", "warn", "info", "debug", "trace"}

// ParseLevel maps a LOG_LEVEL value onto a slog level; unknown values are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fatal", "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "debug", "trace":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// New builds the process logger: human-readable text in development, JSON elsewhere.
func New(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var h slog.Handler
	if env == "development" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h)
}
