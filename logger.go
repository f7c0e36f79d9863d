package mdist

import (
	"io"
	"log/slog"
)

// NewTextLogger creates a logger that writes human-readable records to w.
func NewTextLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewJSONLogger creates a logger that writes JSON records to w.
func NewJSONLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a logger that discards all output.
func NoopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
