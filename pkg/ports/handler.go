package ports

import (
	"context"

	"github.com/bobcode/ussd/pkg/domain"
)

// ActionHandler is a pluggable unit of business logic bound to menu
// options by a stable string key.
type ActionHandler interface {
	// Key identifies this handler in the registry. Keys are unique per
	// registry; a collision is a configuration error.
	Key() string

	// Handle runs the business logic. The session inside uc is live and
	// may be mutated; the engine persists it after the request.
	Handle(ctx context.Context, uc *domain.Context) (domain.StepResult, error)
}

// HandlerFunc adapts a function to ActionHandler.
type HandlerFunc struct {
	ActionKey string
	Fn        func(ctx context.Context, uc *domain.Context) (domain.StepResult, error)
}

func (h HandlerFunc) Key() string { return h.ActionKey }

func (h HandlerFunc) Handle(ctx context.Context, uc *domain.Context) (domain.StepResult, error) {
	return h.Fn(ctx, uc)
}
