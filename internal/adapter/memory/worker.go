package memory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/tejashwikalptaru/eventhub/internal/domain"
	"github.com/tejashwikalptaru/eventhub/internal/ports"
)

// Runner executes the payload of one job.
type Runner func(ctx context.Context, payload any) error

// WorkerStats is a snapshot of worker counters.
type WorkerStats struct {
	Processed uint64
	Failed    uint64
}

// Worker drains a Queue with a fixed number of goroutines, routing each job to the
// runner registered for its name. Failed jobs are logged and counted; they are not retried.
type Worker struct {
	// Dependencies
	logger *slog.Logger

	runners     map[string]Runner
	concurrency int

	processed atomic.Uint64
	failed    atomic.Uint64

	// mu protects runners and logger
	mu sync.RWMutex
}

// NewWorker creates a worker running concurrency goroutines.
func NewWorker(concurrency int) *Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Worker{
		runners:     make(map[string]Runner),
		concurrency: concurrency,
	}
}

// SetLogger sets the logger for this worker.
func (w *Worker) SetLogger(logger *slog.Logger) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.logger = logger
}

// Handle registers the runner for a job name, replacing any previous one.
func (w *Worker) Handle(job string, runner Runner) {
	if runner == nil {
		panic("job runner cannot be nil")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.runners[job] = runner
}

// Run processes jobs until the queue is closed and drained, or ctx is done.
// It returns nil on both; job failures never stop the worker.
func (w *Worker) Run(ctx context.Context, q *Queue) error {
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < w.concurrency; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case job, ok := <-q.Jobs():
					if !ok {
						return nil
					}
					if err := w.Process(ctx, job); err != nil {
						w.log().Error("queued job failed",
							slog.String("job", job.Name),
							slog.String("id", job.ID),
							slog.Any("error", err))
					}
				}
			}
		})
	}

	return g.Wait()
}

// Process runs a single job and updates the counters.
func (w *Worker) Process(ctx context.Context, job Job) (err error) {
	w.mu.RLock()
	runner, ok := w.runners[job.Name]
	w.mu.RUnlock()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			w.failed.Add(1)
			err = &domain.JobError{ID: job.ID, Job: job.Name, Err: err}
			return
		}
		w.processed.Add(1)
	}()

	if !ok {
		return domain.ErrUnknownJob
	}

	w.log().Debug("running queued job",
		slog.String("job", job.Name),
		slog.String("id", job.ID))
	return runner(ctx, job.Payload)
}

// Stats returns the worker counters.
func (w *Worker) Stats() WorkerStats {
	return WorkerStats{
		Processed: w.processed.Load(),
		Failed:    w.failed.Load(),
	}
}

func (w *Worker) log() *slog.Logger {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return w.logger
}

// InlineQueue is a ports.Queue that runs every job on the pushing goroutine
// through a Worker. Job errors are returned from Push.
type InlineQueue struct {
	worker *Worker
	total  atomic.Uint64
}

// NewInlineQueue creates an inline queue backed by the worker's runners.
func NewInlineQueue(worker *Worker) *InlineQueue {
	return &InlineQueue{worker: worker}
}

// Push runs the job immediately.
func (q *InlineQueue) Push(job string, payload any) error {
	q.total.Add(1)
	return q.worker.Process(context.Background(), newJob(job, payload))
}

// Total returns the number of jobs pushed.
func (q *InlineQueue) Total() uint64 {
	return q.total.Load()
}

// Verify that InlineQueue implements the Queue interface
var _ ports.Queue = (*InlineQueue)(nil)
