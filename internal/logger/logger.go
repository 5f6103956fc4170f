// Package logger provides structured logging configuration using log/slog.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Config holds logger configuration.
type Config struct {
	Level  slog.Level
	Format string // "text" or "json"
}

// NewLogger creates a configured slog.Logger.
func NewLogger(cfg Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: cfg.Level,
		// Add a source location for debug and error levels
		AddSource: cfg.Level <= slog.LevelDebug,
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

// DefaultConfig returns the default logger configuration.
// Parses EVENTHUB_LOG_LEVEL (DEBUG, INFO, WARN, WARNING, ERROR; default INFO)
// and EVENTHUB_LOG_FORMAT (text or json; default text).
func DefaultConfig() Config {
	level := slog.LevelInfo

	if envLevel := os.Getenv("EVENTHUB_LOG_LEVEL"); envLevel != "" {
		if parsed, ok := ParseLevel(envLevel); ok {
			level = parsed
		}
	}

	format := "text"
	if strings.EqualFold(os.Getenv("EVENTHUB_LOG_FORMAT"), "json") {
		format = "json"
	}

	return Config{
		Level:  level,
		Format: format,
	}
}

// ParseLevel maps a level name to a slog.Level. Matching is case-insensitive.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
