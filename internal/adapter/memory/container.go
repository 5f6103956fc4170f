// Package memory provides in-process implementations of the dispatcher's collaborators:
// a container for listener targets, a buffered job queue and a worker pool draining it.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tejashwikalptaru/eventhub/internal/domain"
	"github.com/tejashwikalptaru/eventhub/internal/ports"
)

// Factory builds a fresh target instance.
type Factory func() (domain.Target, error)

// Container implements ports.Container with named factories.
//
// Thread-safe: All operations protected by sync.RWMutex.
type Container struct {
	bindings map[string]Factory
	mu       sync.RWMutex
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{
		bindings: make(map[string]Factory),
	}
}

// Bind registers a factory under the name. Every Make call runs the factory.
func (c *Container) Bind(name string, factory Factory) {
	if factory == nil {
		panic("container factory cannot be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings[name] = factory
}

// Instance registers a shared target returned by every Make call.
func (c *Container) Instance(name string, target domain.Target) {
	c.Bind(name, func() (domain.Target, error) {
		return target, nil
	})
}

// Make builds the target bound under the name.
func (c *Container) Make(name string) (domain.Target, error) {
	c.mu.RLock()
	factory, ok := c.bindings[name]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("container: make %q: %w", name, domain.ErrTargetNotFound)
	}

	target, err := factory()
	if err != nil {
		return nil, fmt.Errorf("container: make %q: %w", name, err)
	}
	return target, nil
}

// Bound reports whether a target is bound under the name.
func (c *Container) Bound(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bindings[name]
	return ok
}

// Names returns the bound names in sorted order.
func (c *Container) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.bindings))
	for name := range c.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Verify that Container implements the Container interface
var _ ports.Container = (*Container)(nil)
