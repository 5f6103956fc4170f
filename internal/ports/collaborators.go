// Package ports define the collaborators consumed by the dispatcher.
package ports

import (
	"github.com/tejashwikalptaru/eventhub/internal/domain"
)

// Container produces target instances for string listener references.
//
// Make returns an error wrapping domain.ErrTargetNotFound when nothing is bound
// under the name.
//
// Thread-safety: Implementations must be thread-safe.
type Container interface {
	Make(name string) (domain.Target, error)
}

// Queue accepts jobs for asynchronous execution. Push is a handoff: it must not
// wait for the job to run.
type Queue interface {
	Push(job string, payload any) error
}

// QueueResolver returns the queue handle at the moment a queued listener fires.
// A nil resolver or a nil queue means no queue is available.
type QueueResolver func() Queue

// TypeDescriber enumerates the metadata of a concrete event record.
//
// Describe returns an error wrapping domain.ErrNoTypeMetadata when the record's
// type is unknown.
type TypeDescriber interface {
	Describe(record any) (domain.TypeInfo, error)
}
