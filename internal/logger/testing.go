// Package logger provides test helpers for structured logging.
package logger

import (
	"log/slog"
	"os"
)

// NewTestLogger creates a logger for tests.
// By default, uses WARN level to keep dispatcher and worker debug lines out of test output.
// Set TEST_DEBUG to enable debug logging, or TEST_LOG_LEVEL to pick any level.
func NewTestLogger() *slog.Logger {
	level := slog.LevelWarn

	if os.Getenv("TEST_DEBUG") != "" {
		level = slog.LevelDebug
	} else if parsed, ok := ParseLevel(os.Getenv("TEST_LOG_LEVEL")); ok {
		level = parsed
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
