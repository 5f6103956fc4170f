package eventbus

import (
	"slices"

	"github.com/tejashwikalptaru/eventhub/internal/domain"
)

// registry maps subscription patterns to their listeners in registration order.
// It is not safe for concurrent use; the Dispatcher guards it.
type registry struct {
	// listeners holds every pattern, exact and wildcard
	listeners map[domain.Pattern][]domain.Descriptor

	// wildcards lists wildcard patterns in the order they were first registered
	wildcards []domain.Pattern
}

func newRegistry() *registry {
	return &registry{
		listeners: make(map[domain.Pattern][]domain.Descriptor),
	}
}

// add appends a listener under the pattern.
func (r *registry) add(pattern domain.Pattern, listener domain.Descriptor) {
	if _, exists := r.listeners[pattern]; !exists && pattern.IsWildcard() {
		r.wildcards = append(r.wildcards, pattern)
	}
	r.listeners[pattern] = append(r.listeners[pattern], listener)
}

// remove drops the entry stored under exactly this pattern.
func (r *registry) remove(pattern domain.Pattern) {
	if _, exists := r.listeners[pattern]; !exists {
		return
	}
	delete(r.listeners, pattern)
	if pattern.IsWildcard() {
		r.wildcards = slices.DeleteFunc(r.wildcards, func(p domain.Pattern) bool {
			return p == pattern
		})
	}
}

// has reports whether the name is a registered key or is matched by a wildcard.
func (r *registry) has(name domain.EventName) bool {
	if len(r.listeners[domain.Pattern(name)]) > 0 {
		return true
	}
	for _, pattern := range r.wildcards {
		if len(r.listeners[pattern]) > 0 && Matches(pattern, name) {
			return true
		}
	}
	return false
}

// listenersFor returns a copy of the listeners reached by the name: the exact entry
// first, then each matching wildcard entry in first-registration order.
func (r *registry) listenersFor(name domain.EventName) []domain.Descriptor {
	var out []domain.Descriptor

	exact := domain.Pattern(name)
	if !exact.IsWildcard() {
		out = append(out, r.listeners[exact]...)
	}

	for _, pattern := range r.wildcards {
		if Matches(pattern, name) {
			out = append(out, r.listeners[pattern]...)
		}
	}
	return out
}

// count returns the total number of registered listeners.
func (r *registry) count() int {
	n := 0
	for _, listeners := range r.listeners {
		n += len(listeners)
	}
	return n
}
