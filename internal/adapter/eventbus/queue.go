package eventbus

import (
	"github.com/tejashwikalptaru/eventhub/internal/codec"
	"github.com/tejashwikalptaru/eventhub/internal/domain"
	"github.com/tejashwikalptaru/eventhub/internal/ports"
)

// shouldQueue reports whether the listener's target asks to run on the work queue.
// Direct listeners never queue.
func shouldQueue(inv invocable) bool {
	q, ok := inv.target.(domain.Queueable)
	return ok && q.ShouldQueue()
}

// enqueue hands a queued listener to the queue returned by resolveQueue.
//
// The default job is domain.CallQueuedListenerJob with a domain.QueuedCall payload.
// Targets implementing domain.QueueCustomizer receive the queue, the job name and the
// call record instead and decide themselves what gets pushed.
func enqueue(resolveQueue ports.QueueResolver, inv invocable, payload []any) error {
	target, method := inv.descriptor.Target(), inv.descriptor.Method()

	var queue ports.Queue
	if resolveQueue != nil {
		queue = resolveQueue()
	}
	if queue == nil {
		return domain.NewQueueError("resolve", target, method, domain.ErrQueueUnavailable)
	}

	data, err := codec.Encode(payload)
	if err != nil {
		return domain.NewQueueError("encode", target, method, err)
	}

	call := domain.QueuedCall{
		Type:   target,
		Method: method,
		Data:   data,
	}

	if custom, ok := inv.target.(domain.QueueCustomizer); ok {
		if err := custom.Queue(queue, domain.CallQueuedListenerJob, call); err != nil {
			return domain.NewQueueError("custom", target, method, err)
		}
		return nil
	}

	if err := queue.Push(domain.CallQueuedListenerJob, call); err != nil {
		return domain.NewQueueError("push", target, method, err)
	}
	return nil
}
