package eventbus

import (
	"fmt"
	"sync"

	"github.com/tejashwikalptaru/eventhub/internal/domain"
)

// Fakes for the dispatcher's collaborators

type fakeContainer struct {
	mu      sync.Mutex
	targets map[string]domain.Target
	made    []string
}

func newFakeContainer() *fakeContainer {
	return &fakeContainer{targets: make(map[string]domain.Target)}
}

func (c *fakeContainer) bind(name string, target domain.Target) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.targets[name] = target
}

func (c *fakeContainer) Make(name string) (domain.Target, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.made = append(c.made, name)
	target, ok := c.targets[name]
	if !ok {
		return nil, fmt.Errorf("make %q: %w", name, domain.ErrTargetNotFound)
	}
	return target, nil
}

type call struct {
	method string
	args   []any
}

// recordingTarget records every method call it receives.
type recordingTarget struct {
	mu    sync.Mutex
	calls []call
}

func (t *recordingTarget) Call(method string, args ...any) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, call{method: method, args: args})
	return nil
}

func (t *recordingTarget) recorded() []call {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]call(nil), t.calls...)
}

// queuedTarget asks to be queued.
type queuedTarget struct {
	recordingTarget
}

func (t *queuedTarget) ShouldQueue() bool { return true }

// customQueuedTarget pushes the job itself.
type customQueuedTarget struct {
	queuedTarget
	queued int
}

func (t *customQueuedTarget) Queue(q domain.JobPusher, job string, c domain.QueuedCall) error {
	t.queued++
	return q.Push(job, c)
}

type pushedJob struct {
	job     string
	payload any
}

type recordingQueue struct {
	mu   sync.Mutex
	jobs []pushedJob
	err  error
}

func (q *recordingQueue) Push(job string, payload any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, pushedJob{job: job, payload: payload})
	return nil
}

// Event records with static metadata

type exampleEvent struct{}

type anotherEvent struct{ Name string }

func (anotherEvent) EventType() domain.TypeInfo {
	return domain.TypeInfo{
		Name: "AnotherEvent",
		Tags: []domain.EventName{"SomeEventInterface"},
	}
}

type exampleConcreteEvent struct{}

func (exampleConcreteEvent) EventType() domain.TypeInfo {
	return domain.TypeInfo{
		Name:      "ExampleConcreteEvent",
		Tags:      []domain.EventName{"SomeEventInterface"},
		Ancestors: []domain.EventName{"SomeAbstractClass"},
	}
}

// staticTypes describes exampleEvent, which carries no metadata of its own.
type staticTypes struct{}

func (staticTypes) Describe(record any) (domain.TypeInfo, error) {
	if _, ok := record.(exampleEvent); ok {
		return domain.TypeInfo{Name: "ExampleEvent"}, nil
	}
	return domain.TypeInfo{}, domain.ErrNoTypeMetadata
}
