package logger

import (
	"log/slog"
	"os"
)

// New returns a structured JSON logger using slog.
// Log level defaults to info; set ROOMDESK_DEBUG=true for debug output.
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("ROOMDESK_DEBUG") == "true" {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}
