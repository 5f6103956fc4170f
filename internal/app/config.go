package app

import (
	"flag"
	"fmt"
	"log/slog"

	"github.com/peterbourgon/ff/v3"

	"github.com/tejashwikalptaru/eventhub/internal/logger"
)

// Config holds application configuration.
type Config struct {
	// LogLevel controls logging verbosity
	LogLevel slog.Level

	// LogFormat is "text" or "json"
	LogFormat string

	// QueueWorkers is the number of goroutines running queued listeners
	QueueWorkers int

	// QueueBuffer is the number of jobs the queue holds before Push fails
	QueueBuffer int

	// InlineQueue runs queued listeners on the firing goroutine instead of the pool
	InlineQueue bool
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	return Config{
		LogLevel:     loggerCfg.Level,
		LogFormat:    loggerCfg.Format,
		QueueWorkers: 4,
		QueueBuffer:  256,
		InlineQueue:  false,
	}
}

// LoadConfig parses configuration from command-line style arguments and
// EVENTHUB_* environment variables, on top of DefaultConfig. Flags win over
// the environment.
//
//	-log-level      EVENTHUB_LOG_LEVEL      debug, info, warn, error
//	-log-format     EVENTHUB_LOG_FORMAT     text, json
//	-queue-workers  EVENTHUB_QUEUE_WORKERS
//	-queue-buffer   EVENTHUB_QUEUE_BUFFER
//	-inline-queue   EVENTHUB_INLINE_QUEUE
func LoadConfig(args []string) (Config, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("eventhub", flag.ContinueOnError)
	var (
		logLevel     = fs.String("log-level", cfg.LogLevel.String(), "log level")
		logFormat    = fs.String("log-format", cfg.LogFormat, "log format (text or json)")
		queueWorkers = fs.Int("queue-workers", cfg.QueueWorkers, "worker goroutines for queued listeners")
		queueBuffer  = fs.Int("queue-buffer", cfg.QueueBuffer, "pending job capacity")
		inlineQueue  = fs.Bool("inline-queue", cfg.InlineQueue, "run queued listeners inline")
	)

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("EVENTHUB")); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	level, ok := logger.ParseLevel(*logLevel)
	if !ok {
		return Config{}, fmt.Errorf("load config: unknown log level %q", *logLevel)
	}

	cfg.LogLevel = level
	cfg.LogFormat = *logFormat
	cfg.QueueWorkers = *queueWorkers
	cfg.QueueBuffer = *queueBuffer
	cfg.InlineQueue = *inlineQueue

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("config: log format must be text or json, got %q", c.LogFormat)
	}
	if c.QueueWorkers < 1 {
		return fmt.Errorf("config: queue workers must be positive, got %d", c.QueueWorkers)
	}
	if c.QueueBuffer < 1 {
		return fmt.Errorf("config: queue buffer must be positive, got %d", c.QueueBuffer)
	}
	return nil
}
