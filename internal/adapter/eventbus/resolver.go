package eventbus

import (
	"github.com/tejashwikalptaru/eventhub/internal/domain"
	"github.com/tejashwikalptaru/eventhub/internal/ports"
)

// invocable is a listener ready to run. target is set only for container references.
type invocable struct {
	descriptor domain.Descriptor
	target     domain.Target
	call       domain.Listener
}

// resolver turns listener descriptors into invocables, late-binding container
// references on every resolution.
type resolver struct {
	container ports.Container
}

// resolve returns direct listeners unchanged and asks the container for the
// target of a reference. Container failures come back as *domain.ResolutionError.
func (r resolver) resolve(d domain.Descriptor) (invocable, error) {
	if d.IsDirect() {
		return invocable{descriptor: d, call: d.Listener()}, nil
	}

	if r.container == nil {
		return invocable{}, domain.NewResolutionError(d.Target(), d.Method(), domain.ErrNoContainer)
	}

	target, err := r.container.Make(d.Target())
	if err != nil {
		return invocable{}, domain.NewResolutionError(d.Target(), d.Method(), err)
	}
	if target == nil {
		return invocable{}, domain.NewResolutionError(d.Target(), d.Method(), domain.ErrTargetNotFound)
	}

	method := d.Method()
	return invocable{
		descriptor: d,
		target:     target,
		call: func(args ...any) error {
			return target.Call(method, args...)
		},
	}, nil
}
