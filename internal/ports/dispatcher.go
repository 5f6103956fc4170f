// Package ports define the Dispatcher interface for in-process event dispatch.
// The dispatcher decouples code raising events from the listeners reacting to them.
package ports

import (
	"github.com/tejashwikalptaru/eventhub/internal/domain"
)

// Dispatcher binds named or typed events to listeners.
//
// Listeners run synchronously in registration order on the caller's goroutine,
// except listeners whose target is queueable, which are handed to the work queue.
//
// Example usage:
//
//	d.Listen("order.created", domain.Func(func(args ...any) error {
//	    order := args[0].(Order)
//	    return notify(order)
//	}))
//	d.Listen("order.*", domain.TargetRef("AuditLog@record"))
//
//	err := d.Fire("order.created", order)
//
//	// Deferred: nothing runs until Flush
//	d.Push("order.shipped", order)
//	err = d.Flush("order.shipped")
type Dispatcher interface {
	// Listen appends a listener under the pattern. Patterns are exact event names
	// or wildcard patterns ending in ".*".
	Listen(pattern domain.Pattern, listener domain.Descriptor)

	// Fire dispatches an event. event is an event name (string or domain.EventName)
	// or an event record, in which case the record's metadata names are all looked up
	// and the payload defaults to the record itself.
	//
	// The first error from a listener, a resolution or an enqueue aborts the
	// remaining listeners and is returned.
	Fire(event any, payload ...any) error

	// Push buffers a payload under the event name without invoking listeners.
	Push(event domain.EventName, payload ...any)

	// Flush fires every payload buffered under the event name in push order,
	// then clears the buffer for that name.
	Flush(event domain.EventName) error

	// ForgetPushed drops every buffered payload without firing.
	ForgetPushed()

	// Forget removes the listeners registered under exactly this pattern.
	Forget(pattern domain.Pattern)

	// HasListeners reports whether firing the name would reach any listener.
	HasListeners(name domain.EventName) bool

	// Firing returns the innermost event currently being dispatched, or "" when idle.
	Firing() domain.EventName

	// SetQueueResolver sets the late-bound resolver for the work queue.
	SetQueueResolver(resolver QueueResolver)
}

// Subscriber registers several listeners on a dispatcher at once.
type Subscriber interface {
	Subscribe(d Dispatcher)
}
