package domain

import (
	"fmt"
	"strings"
)

// DefaultMethod is the method called on a target when a reference names no method.
const DefaultMethod = "handle"

// MethodSeparator splits a "Target@method" reference.
const MethodSeparator = "@"

// Listener is a directly invocable listener. The payload is passed as positional
// arguments. A non-nil error aborts the remaining listeners of the dispatch.
type Listener func(args ...any) error

// Target is an instance produced by the container for a string listener reference.
// Call invokes the named method with the fire-time arguments and returns
// ErrMethodNotFound for methods the target does not expose.
type Target interface {
	Call(method string, args ...any) error
}

// Methods is a Target backed by a table of named listeners.
type Methods map[string]Listener

// Call invokes the listener registered under method.
func (m Methods) Call(method string, args ...any) error {
	fn, ok := m[method]
	if !ok {
		return fmt.Errorf("call %q: %w", method, ErrMethodNotFound)
	}
	return fn(args...)
}

// Queueable marks a target whose invocation must go through the work queue.
//
// A queued target receives its arguments after a serialization round trip, not the
// values passed to Fire. Integers arrive as int64 (uint64 past MaxInt64), floats as
// float64, other slices as []any, structs and string-keyed maps as map[string]any,
// and other maps as map[any]any. Fire fails when an argument cannot make that trip.
type Queueable interface {
	ShouldQueue() bool
}

// QueueCustomizer lets a queueable target decide how it is enqueued. It receives the
// queue handle, the generic job identifier and the call record the dispatcher would
// have pushed.
type QueueCustomizer interface {
	Queue(q JobPusher, job string, call QueuedCall) error
}

// JobPusher is the part of a queue a QueueCustomizer needs.
type JobPusher interface {
	Push(job string, payload any) error
}

// Descriptor describes a listener, either directly (a Listener) or indirectly by
// a container target name and method name resolved at fire time.
type Descriptor struct {
	fn     Listener
	target string
	method string
}

// Func wraps a Listener in a Descriptor.
func Func(fn Listener) Descriptor {
	return Descriptor{fn: fn}
}

// TargetRef parses a "Target@method" reference. The method defaults to DefaultMethod.
func TargetRef(ref string) Descriptor {
	target, method, found := strings.Cut(ref, MethodSeparator)
	if !found || method == "" {
		method = DefaultMethod
	}
	return Descriptor{target: target, method: method}
}

// IsDirect reports whether the descriptor carries an invocable listener.
func (d Descriptor) IsDirect() bool {
	return d.fn != nil
}

// Listener returns the direct listener, nil for target references.
func (d Descriptor) Listener() Listener {
	return d.fn
}

// Target returns the referenced container target name.
func (d Descriptor) Target() string {
	return d.target
}

// Method returns the referenced method name.
func (d Descriptor) Method() string {
	return d.method
}

// IsZero reports whether the descriptor describes nothing.
func (d Descriptor) IsZero() bool {
	return d.fn == nil && d.target == ""
}

// String returns "Target@method" for references and a placeholder for closures.
func (d Descriptor) String() string {
	if d.IsDirect() {
		return fmt.Sprintf("func(%p)", d.fn)
	}
	return d.target + MethodSeparator + d.method
}

// QueuedCall is the payload of a generic "call stored listener" job.
// Data holds the serialized arguments; see Queueable for the shapes a target receives.
type QueuedCall struct {
	Type   string `cbor:"type" json:"type"`
	Method string `cbor:"method" json:"method"`
	Data   []byte `cbor:"data" json:"data"`
}

// CallQueuedListenerJob addresses the job runner that executes QueuedCall payloads.
const CallQueuedListenerJob = "eventhub.CallQueuedListener@call"
