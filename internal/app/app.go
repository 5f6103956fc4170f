// Package app provides application-level orchestration and dependency injection.
// This package wires the dispatcher to its container, type metadata, work queue and
// worker pool, and manages the worker lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tejashwikalptaru/eventhub/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/eventhub/internal/adapter/memory"
	"github.com/tejashwikalptaru/eventhub/internal/adapter/typeinfo"
	"github.com/tejashwikalptaru/eventhub/internal/domain"
	"github.com/tejashwikalptaru/eventhub/internal/logger"
	"github.com/tejashwikalptaru/eventhub/internal/ports"
	"github.com/tejashwikalptaru/eventhub/internal/service"
)

// Application is the root structure that holds all dependencies.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Starting and stopping the worker pool that runs queued listeners
// - Giving hosts access to the dispatcher, container and type table
type Application struct {
	// Core dependencies
	logger *slog.Logger
	config Config

	// Collaborators
	container *memory.Container
	types     *typeinfo.Table

	// Queue infrastructure
	queue  ports.Queue
	jobs   *memory.Queue // nil when queued listeners run inline
	worker *memory.Worker
	runner *service.CallQueuedListener

	dispatcher *eventbus.Dispatcher

	// Lifecycle
	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan error
	stopped bool
}

// NewApplication creates a new application with all dependencies wired.
func NewApplication(config Config) (*Application, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	app := &Application{config: config}

	// Step 1: Create logger
	app.logger = logger.NewLogger(logger.Config{
		Level:  config.LogLevel,
		Format: config.LogFormat,
	})
	app.logger.Info("initializing application",
		slog.String("version", GetVersionInfo().FullString()),
		slog.Int("queue_workers", config.QueueWorkers),
		slog.Bool("inline_queue", config.InlineQueue))

	// Step 2: Create collaborators
	app.container = memory.NewContainer()
	app.types = typeinfo.NewTable()

	// Step 3: Create the job runner and the worker routing jobs to it
	app.runner = service.NewCallQueuedListener(
		app.logger.With(slog.String("service", "call_queued_listener")),
		app.container,
	)
	app.worker = memory.NewWorker(config.QueueWorkers)
	app.worker.SetLogger(app.logger.With(slog.String("component", "worker")))
	app.worker.Handle(domain.CallQueuedListenerJob, app.runner.Run)

	// Step 4: Create the work queue
	if config.InlineQueue {
		app.queue = memory.NewInlineQueue(app.worker)
	} else {
		app.jobs = memory.NewQueue(config.QueueBuffer)
		app.queue = app.jobs
	}

	// Step 5: Create the dispatcher
	app.dispatcher = eventbus.NewDispatcher(app.container, app.types)
	app.dispatcher.SetLogger(app.logger.With(slog.String("component", "dispatcher")))
	app.dispatcher.SetQueueResolver(func() ports.Queue {
		return app.queue
	})

	return app, nil
}

// Start launches the worker pool. It returns immediately; queued listeners run
// until Shutdown or until ctx is done. Inline queues need no workers.
func (a *Application) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return fmt.Errorf("start: application already shut down")
	}
	if a.done != nil || a.jobs == nil {
		return nil
	}

	ctx, a.cancel = context.WithCancel(ctx)
	a.done = make(chan error, 1)

	go func(done chan<- error) {
		done <- a.worker.Run(ctx, a.jobs)
	}(a.done)

	a.logger.Info("worker pool started", slog.Int("workers", a.config.QueueWorkers))
	return nil
}

// Shutdown stops accepting jobs, lets the workers drain what is pending and waits
// for them. Calling Shutdown more than once is a no-op.
func (a *Application) Shutdown() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return nil
	}
	a.stopped = true

	a.logger.Info("shutting down application")

	if a.jobs != nil {
		a.jobs.Close()
	}

	var err error
	if a.done != nil {
		err = <-a.done
		a.cancel()
	}

	stats := a.worker.Stats()
	a.logger.Info("application shutdown complete",
		slog.Uint64("jobs_processed", stats.Processed),
		slog.Uint64("jobs_failed", stats.Failed))

	return err
}

// GetDispatcher returns the event dispatcher.
func (a *Application) GetDispatcher() *eventbus.Dispatcher {
	return a.dispatcher
}

// GetContainer returns the container resolving "Target@method" listeners.
func (a *Application) GetContainer() *memory.Container {
	return a.container
}

// GetTypes returns the event record metadata table.
func (a *Application) GetTypes() *typeinfo.Table {
	return a.types
}

// GetWorker returns the worker pool running queued listeners.
func (a *Application) GetWorker() *memory.Worker {
	return a.worker
}
