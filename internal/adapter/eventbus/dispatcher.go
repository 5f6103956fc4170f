// Package eventbus provides the in-process event dispatcher.
// This package contains the pattern registry, listener resolution, the queue handoff,
// the deferred buffer and the Dispatcher that composes them.
package eventbus

import (
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"slices"
	"sync"

	"github.com/tejashwikalptaru/eventhub/internal/domain"
	"github.com/tejashwikalptaru/eventhub/internal/ports"
)

// Dispatcher is a synchronous implementation of the ports.Dispatcher interface.
// Listeners are invoked on the caller's goroutine in registration order; queueable
// container targets are handed to the work queue instead.
//
// Thread-safety: This implementation is thread-safe. The registry, the deferred buffer
// and the firing stack share one lock, which is never held while a listener runs, so
// listeners may fire, listen and forget reentrantly.
//
// The firing stack is shared by the whole dispatcher. Firing from several goroutines
// at once is safe but Firing then reports whichever dispatch entered last.
type Dispatcher struct {
	// Dependencies
	logger    *slog.Logger
	container ports.Container
	types     ports.TypeDescriber

	// queueResolver is the late-bound work queue
	queueResolver ports.QueueResolver

	registry *registry
	pushed   *deferred
	firing   firingStack

	// mu protects every field above
	mu sync.RWMutex
}

// NewDispatcher creates a new dispatcher.
// container resolves "Target@method" listeners and types describes event records;
// either may be nil when the dispatcher only sees direct listeners or event names.
func NewDispatcher(container ports.Container, types ports.TypeDescriber) *Dispatcher {
	return &Dispatcher{
		container: container,
		types:     types,
		registry:  newRegistry(),
		pushed:    newDeferred(),
	}
}

// SetLogger sets the logger for this dispatcher.
// This should be called after construction before using the dispatcher.
func (d *Dispatcher) SetLogger(logger *slog.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = logger
}

// SetQueueResolver sets the resolver that supplies the work queue for queued listeners.
func (d *Dispatcher) SetQueueResolver(resolver ports.QueueResolver) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queueResolver = resolver
}

// Listen appends a listener under the pattern.
//
// The same listener can be registered several times and then runs several times.
func (d *Dispatcher) Listen(pattern domain.Pattern, listener domain.Descriptor) {
	if listener.IsZero() {
		panic("event listener cannot be empty")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.registry.add(pattern, listener)
}

// ListenMany registers one listener under several patterns.
func (d *Dispatcher) ListenMany(patterns []domain.Pattern, listener domain.Descriptor) {
	for _, pattern := range patterns {
		d.Listen(pattern, listener)
	}
}

// Subscribe lets a subscriber register its listeners.
func (d *Dispatcher) Subscribe(subscriber ports.Subscriber) {
	subscriber.Subscribe(d)
}

// Forget removes every listener stored under exactly this pattern.
// Other patterns, including wildcards matching it, are left alone.
func (d *Dispatcher) Forget(pattern domain.Pattern) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.registry.remove(pattern)
}

// HasListeners reports whether the name is a registered pattern or is matched by one.
func (d *Dispatcher) HasListeners(name domain.EventName) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.registry.has(name)
}

// Listeners returns the descriptors firing the name would reach, in call order.
func (d *Dispatcher) Listeners(name domain.EventName) []domain.Descriptor {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.registry.listenersFor(name)
}

// ListenerCount returns the number of registered listeners for debugging.
func (d *Dispatcher) ListenerCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.registry.count()
}

// Firing returns the innermost event being dispatched, or "" when idle.
func (d *Dispatcher) Firing() domain.EventName {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.firing.top()
}

// Fire dispatches an event to its listeners.
//
// event is a string or domain.EventName, or an event record. A record is looked up
// under its own type name, its capability tags and its ancestors, in that order, and
// becomes the payload when none is given.
//
// The first error aborts the remaining listeners and is returned. Errors returned by
// listeners are passed through unchanged.
func (d *Dispatcher) Fire(event any, payload ...any) error {
	names, err := d.lookupNames(event)
	if err != nil {
		return err
	}
	if len(payload) == 0 && !isName(event) {
		payload = []any{event}
	}

	d.enter(names[0])
	defer d.leave()

	for _, name := range names {
		d.mu.RLock()
		listeners := d.registry.listenersFor(name)
		d.mu.RUnlock()

		for _, listener := range listeners {
			if err := d.dispatch(name, listener, payload); err != nil {
				return err
			}
		}
	}
	return nil
}

// Push buffers a payload under the event name. Nothing is invoked until Flush.
func (d *Dispatcher) Push(event domain.EventName, payload ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pushed.push(event, payload)
}

// Pushed returns the number of payloads buffered under the event name.
func (d *Dispatcher) Pushed(event domain.EventName) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.pushed.count(event)
}

// Flush fires every payload buffered under the event name, in push order, and clears
// the buffer for that name. Payloads pushed while flushing stay buffered.
//
// If a dispatch fails, the payloads after the failing one are put back and the
// error is returned.
func (d *Dispatcher) Flush(event domain.EventName) error {
	d.mu.Lock()
	payloads := d.pushed.take(event)
	d.mu.Unlock()

	for i, payload := range payloads {
		if err := d.Fire(event, payload...); err != nil {
			d.mu.Lock()
			d.pushed.restore(event, payloads[i+1:])
			d.mu.Unlock()
			return err
		}
	}
	return nil
}

// FlushAll flushes every buffered event name in the order each was first pushed.
func (d *Dispatcher) FlushAll() error {
	d.mu.RLock()
	names := d.pushed.names()
	d.mu.RUnlock()

	for _, name := range names {
		if err := d.Flush(name); err != nil {
			return err
		}
	}
	return nil
}

// ForgetPushed drops every buffered payload without firing anything.
func (d *Dispatcher) ForgetPushed() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pushed.clear()
}

// lookupNames returns the registry keys for an event, primary name first.
func (d *Dispatcher) lookupNames(event any) ([]domain.EventName, error) {
	switch e := event.(type) {
	case nil:
		return nil, fmt.Errorf("fire: %w", domain.ErrInvalidEvent)
	case domain.EventName:
		return []domain.EventName{e}, nil
	case string:
		return []domain.EventName{domain.EventName(e)}, nil
	case domain.Described:
		return typeNames(e.EventType(), event)
	}

	d.mu.RLock()
	types := d.types
	d.mu.RUnlock()

	if types == nil {
		return nil, fmt.Errorf("fire %T: %w", event, domain.ErrNoTypeMetadata)
	}
	info, err := types.Describe(event)
	if err != nil {
		return nil, fmt.Errorf("fire %T: %w", event, err)
	}
	return typeNames(info, event)
}

func typeNames(info domain.TypeInfo, event any) ([]domain.EventName, error) {
	names := info.Names()
	if len(names) == 0 || names[0] != info.Name {
		return nil, fmt.Errorf("fire %T: metadata has no type name: %w", event, domain.ErrNoTypeMetadata)
	}
	return names, nil
}

func isName(event any) bool {
	switch event.(type) {
	case string, domain.EventName:
		return true
	}
	return false
}

func (d *Dispatcher) enter(name domain.EventName) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.firing.push(name)
}

func (d *Dispatcher) leave() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.firing.pop()
}

// dispatch resolves one listener and either enqueues it or calls it.
func (d *Dispatcher) dispatch(name domain.EventName, listener domain.Descriptor, payload []any) error {
	d.mu.RLock()
	res := resolver{container: d.container}
	queueResolver := d.queueResolver
	logger := d.logger
	d.mu.RUnlock()

	inv, err := res.resolve(listener)
	if err != nil {
		return err
	}

	if shouldQueue(inv) {
		if logger != nil {
			logger.Debug("event listener queued",
				slog.String("event", name.String()),
				slog.String("listener", listener.String()))
		}
		return enqueue(queueResolver, inv, payload)
	}

	if logger != nil {
		logger.Debug("event fired",
			slog.String("event", name.String()),
			slog.String("listener", listenerName(listener)))
	}
	return inv.call(slices.Clone(payload)...)
}

// listenerName returns the function name of a direct listener or the target reference.
func listenerName(listener domain.Descriptor) string {
	if !listener.IsDirect() {
		return listener.String()
	}
	return runtime.FuncForPC(reflect.ValueOf(listener.Listener()).Pointer()).Name()
}

// Verify that Dispatcher implements the Dispatcher interface
var _ ports.Dispatcher = (*Dispatcher)(nil)
