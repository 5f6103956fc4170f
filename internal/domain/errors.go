// Package domain defines dispatcher errors.
// Listener errors are never wrapped: the dispatcher returns them to the caller unchanged.
package domain

import (
	"errors"
	"fmt"
)

// Common errors returned by the dispatcher and its collaborators.
var (
	// ErrTargetNotFound is returned when the container has no binding for a target name.
	ErrTargetNotFound = errors.New("target not found")

	// ErrMethodNotFound is returned when a target does not expose the requested method.
	ErrMethodNotFound = errors.New("method not found")

	// ErrNoContainer is returned when a target reference fires without a container.
	ErrNoContainer = errors.New("no container configured")

	// ErrQueueUnavailable is returned when a queued listener fires and no queue resolver is set.
	ErrQueueUnavailable = errors.New("queue unavailable")

	// ErrQueueClosed is returned when pushing to a closed queue.
	ErrQueueClosed = errors.New("queue closed")

	// ErrQueueFull is returned when a queue cannot accept a job without waiting.
	ErrQueueFull = errors.New("queue full")

	// ErrUnknownJob is returned when a worker has no runner for a job identifier.
	ErrUnknownJob = errors.New("unknown job")

	// ErrNoTypeMetadata is returned when an event record has no registered type metadata.
	ErrNoTypeMetadata = errors.New("no type metadata for event")

	// ErrInvalidEvent is returned when Fire receives neither an event name nor a record.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrInvalidPayload is returned when a job payload has an unexpected shape.
	ErrInvalidPayload = errors.New("invalid job payload")
)

// ResolutionError is returned when a target reference cannot be turned into an instance.
type ResolutionError struct {
	Target string // Target name from the listener reference
	Method string // Method name from the listener reference
	Err    error  // Underlying error from the container
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve listener %s@%s: %v", e.Target, e.Method, e.Err)
}

// Unwrap returns the underlying error.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// NewResolutionError creates a new ResolutionError.
func NewResolutionError(target, method string, err error) *ResolutionError {
	return &ResolutionError{
		Target: target,
		Method: method,
		Err:    err,
	}
}

// QueueError is returned when a queued listener cannot be handed to the work queue.
type QueueError struct {
	Op     string // Operation that failed (e.g., "resolve", "encode", "push")
	Target string // Target name of the listener
	Method string // Method name of the listener
	Err    error  // Underlying error
}

// Error implements the error interface.
func (e *QueueError) Error() string {
	return fmt.Sprintf("queue %s for %s@%s failed: %v", e.Op, e.Target, e.Method, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueueError) Unwrap() error {
	return e.Err
}

// NewQueueError creates a new QueueError.
func NewQueueError(op, target, method string, err error) *QueueError {
	return &QueueError{
		Op:     op,
		Target: target,
		Method: method,
		Err:    err,
	}
}

// JobError is returned by a worker when a job fails.
type JobError struct {
	ID  string // Job identifier assigned by the queue
	Job string // Job name (e.g., CallQueuedListenerJob)
	Err error  // Underlying error
}

// Error implements the error interface.
func (e *JobError) Error() string {
	return fmt.Sprintf("job %s (%s) failed: %v", e.Job, e.ID, e.Err)
}

// Unwrap returns the underlying error.
func (e *JobError) Unwrap() error {
	return e.Err
}
