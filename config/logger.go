package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// NewLogger returns a slog.Logger for one pipeline run, tagged with the
// pipeline name and a fresh run_id. Production uses the JSON handler;
// otherwise text. LOG_LEVEL may be: debug, info, warn, error (default: info).
func NewLogger(pipeline string) *slog.Logger {
	return newLogger(os.Stdout, os.Getenv("GO_ENV"), os.Getenv("LOG_LEVEL")).
		With("pipeline", pipeline, "run_id", uuid.NewString())
}

func newLogger(w io.Writer, env, levelStr string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(levelStr)}
	if env == "production" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
