package memory

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tejashwikalptaru/eventhub/internal/domain"
	"github.com/tejashwikalptaru/eventhub/internal/ports"
)

// Job is a unit of work accepted by a queue.
type Job struct {
	ID       string
	Name     string
	Payload  any
	PushedAt time.Time
}

func newJob(name string, payload any) Job {
	return Job{
		ID:       uuid.NewString(),
		Name:     name,
		Payload:  payload,
		PushedAt: time.Now(),
	}
}

// Queue is a bounded in-memory job queue implementing ports.Queue.
// Push never waits: it fails with domain.ErrQueueFull when the buffer is full.
//
// Thread-safe: Push and Close may be called from any goroutine.
type Queue struct {
	jobs   chan Job
	closed bool
	total  atomic.Uint64
	mu     sync.RWMutex
}

// NewQueue creates a queue holding up to buffer pending jobs.
func NewQueue(buffer int) *Queue {
	if buffer < 1 {
		buffer = 1
	}
	return &Queue{
		jobs: make(chan Job, buffer),
	}
}

// Push enqueues a job.
func (q *Queue) Push(job string, payload any) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return domain.ErrQueueClosed
	}

	select {
	case q.jobs <- newJob(job, payload):
		q.total.Add(1)
		return nil
	default:
		return domain.ErrQueueFull
	}
}

// Jobs returns the channel workers receive from. It is closed by Close.
func (q *Queue) Jobs() <-chan Job {
	return q.jobs
}

// Pending returns the number of jobs waiting for a worker.
func (q *Queue) Pending() int {
	return len(q.jobs)
}

// Total returns the number of jobs accepted since creation.
func (q *Queue) Total() uint64 {
	return q.total.Load()
}

// Close stops accepting jobs. Pending jobs stay readable from Jobs.
// Closing an already closed queue is a no-op.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.jobs)
}

// Verify that Queue implements the Queue interface
var _ ports.Queue = (*Queue)(nil)
