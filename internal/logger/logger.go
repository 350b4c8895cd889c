package logger

import (
	"io"
	"log/slog"
	"os"
)

// New creates the JSON slog.Logger used across the service. Every record
// carries a service attribute so florax lines are filterable when logs
// from several services land in one stream.
func New() *slog.Logger {
	return newWithWriter(os.Stdout)
}

func newWithWriter(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", "florax"))
}
