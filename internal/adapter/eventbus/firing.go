package eventbus

import "github.com/tejashwikalptaru/eventhub/internal/domain"

// firingStack records the events being dispatched, innermost last.
// It is not safe for concurrent use; the Dispatcher guards it.
type firingStack struct {
	names []domain.EventName
}

func (s *firingStack) push(name domain.EventName) {
	s.names = append(s.names, name)
}

func (s *firingStack) pop() {
	if len(s.names) == 0 {
		return
	}
	s.names = s.names[:len(s.names)-1]
}

// top returns the innermost active event, or "" when nothing is firing.
func (s *firingStack) top() domain.EventName {
	if len(s.names) == 0 {
		return ""
	}
	return s.names[len(s.names)-1]
}
