package app

import (
	"log/slog"
	"os"

	"rider-dispatch/internal/logx"
)

// NewLogger returns the JSON stdout logger used by both binaries.
func NewLogger() logx.Logger {
	base := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	return logx.NewSlogAdapter(base)
}
