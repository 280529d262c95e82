package log

import (
	"log/slog"
	"os"
)

// Setup installs the process-wide logger. Diagnostics go to stderr so that
// command output on stdout stays clean.
func Setup(logLevel string) {
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

func WithComponent(component string) *slog.Logger {
	return slog.With("component", component)
}
