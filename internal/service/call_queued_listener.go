// Package service provides the job runners that execute queued listener calls.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tejashwikalptaru/eventhub/internal/codec"
	"github.com/tejashwikalptaru/eventhub/internal/domain"
	"github.com/tejashwikalptaru/eventhub/internal/ports"
)

// CallQueuedListener runs the jobs the dispatcher pushes under
// domain.CallQueuedListenerJob: it rebuilds the target from the container, decodes
// the argument tuple and calls the stored method.
type CallQueuedListener struct {
	// Dependencies (injected)
	logger    *slog.Logger
	container ports.Container
}

// NewCallQueuedListener creates a new job runner.
func NewCallQueuedListener(logger *slog.Logger, container ports.Container) *CallQueuedListener {
	logger.Debug("call queued listener initialized")

	return &CallQueuedListener{
		logger:    logger,
		container: container,
	}
}

// Run executes one job payload. It accepts a domain.QueuedCall or a pointer to one.
func (s *CallQueuedListener) Run(ctx context.Context, payload any) error {
	var call domain.QueuedCall
	switch p := payload.(type) {
	case domain.QueuedCall:
		call = p
	case *domain.QueuedCall:
		if p == nil {
			return fmt.Errorf("call queued listener: nil call: %w", domain.ErrInvalidPayload)
		}
		call = *p
	default:
		return fmt.Errorf("call queued listener: payload %T: %w", payload, domain.ErrInvalidPayload)
	}

	return s.Call(ctx, call)
}

// Call executes a queued call.
func (s *CallQueuedListener) Call(ctx context.Context, call domain.QueuedCall) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	args, err := codec.Decode(call.Data)
	if err != nil {
		return fmt.Errorf("call queued listener %s@%s: %w", call.Type, call.Method, err)
	}

	target, err := s.container.Make(call.Type)
	if err != nil {
		return domain.NewResolutionError(call.Type, call.Method, err)
	}

	s.logger.Debug("calling queued listener",
		slog.String("target", call.Type),
		slog.String("method", call.Method),
		slog.Int("args", len(args)))

	return target.Call(call.Method, args...)
}
