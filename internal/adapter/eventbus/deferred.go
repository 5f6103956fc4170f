package eventbus

import (
	"slices"

	"github.com/tejashwikalptaru/eventhub/internal/domain"
)

// deferred buffers payloads pushed for later firing, per event name.
// It is not safe for concurrent use; the Dispatcher guards it.
type deferred struct {
	payloads map[domain.EventName][]domain.Payload

	// order lists buffered names in the order they were first pushed
	order []domain.EventName
}

func newDeferred() *deferred {
	return &deferred{
		payloads: make(map[domain.EventName][]domain.Payload),
	}
}

func (b *deferred) push(name domain.EventName, payload domain.Payload) {
	if _, exists := b.payloads[name]; !exists {
		b.order = append(b.order, name)
	}
	b.payloads[name] = append(b.payloads[name], slices.Clone(payload))
}

// take removes and returns every payload buffered under the name.
func (b *deferred) take(name domain.EventName) []domain.Payload {
	payloads, exists := b.payloads[name]
	if !exists {
		return nil
	}
	delete(b.payloads, name)
	b.order = slices.DeleteFunc(b.order, func(n domain.EventName) bool {
		return n == name
	})
	return payloads
}

// restore puts unfired payloads back in front of anything pushed since take.
func (b *deferred) restore(name domain.EventName, payloads []domain.Payload) {
	if len(payloads) == 0 {
		return
	}
	pending, exists := b.payloads[name]
	if !exists {
		b.order = append([]domain.EventName{name}, b.order...)
	}
	b.payloads[name] = append(slices.Clone(payloads), pending...)
}

func (b *deferred) clear() {
	b.payloads = make(map[domain.EventName][]domain.Payload)
	b.order = nil
}

func (b *deferred) count(name domain.EventName) int {
	return len(b.payloads[name])
}

func (b *deferred) names() []domain.EventName {
	return slices.Clone(b.order)
}
