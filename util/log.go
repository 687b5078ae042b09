package util

import (
	"log/slog"
	"os"
)

// NewLogger logs JSON to stderr so it never mixes with command output.
func NewLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
