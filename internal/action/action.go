package action

import (
	"context"

	"messenger-dialogue-gateway/internal/model"
	"messenger-dialogue-gateway/pkg/wit"
)

// SendActionName is the built-in reply-delivery action every registry must
// provide.
const SendActionName = "send"

// Invocation is the per-step input handed to a resolved handler.
type Invocation struct {
	SessionID string
	Context   model.Context
	Entities  wit.Entities

	// Message is the reply text for the built-in send action; empty for
	// integrator-defined actions.
	Message string
}

// Handler is a named, side-effecting dialogue action. Execute returns the
// updated context, or nil to signal no context change.
type Handler interface {
	Name() string
	Execute(ctx context.Context, inv Invocation) (model.Context, error)
}

// Registry maps action names to handlers, resolved once at startup.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty action registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler to the registry.
func (r *Registry) Register(h Handler) {
	r.handlers[h.Name()] = h
}

// Get retrieves a handler by name.
func (r *Registry) Get(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// List returns all registered handlers.
func (r *Registry) List() []Handler {
	handlers := make([]Handler, 0, len(r.handlers))
	for _, h := range r.handlers {
		handlers = append(handlers, h)
	}
	return handlers
}
