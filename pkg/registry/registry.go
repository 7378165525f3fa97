// Package registry holds the explicit action-handler mapping built at
// startup. There is no auto-discovery: every handler is registered by
// its key before the engine starts serving requests.
package registry

import (
	"fmt"
	"sync"

	"github.com/bobcode/ussd/pkg/ports"
)

// Registry maps action keys to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]ports.ActionHandler
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		handlers: make(map[string]ports.ActionHandler),
	}
}

// Register adds a handler under its key. Registering the same key twice
// is a configuration error and fails.
func (r *Registry) Register(h ports.ActionHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := h.Key()
	if key == "" {
		return fmt.Errorf("registry: handler key must not be empty")
	}
	if _, exists := r.handlers[key]; exists {
		return fmt.Errorf("registry: duplicate handler key %q", key)
	}
	r.handlers[key] = h
	return nil
}

// MustRegister is Register that panics on error, for static wiring in main.
func (r *Registry) MustRegister(h ports.ActionHandler) {
	if err := r.Register(h); err != nil {
		panic(err)
	}
}

// Lookup returns the handler for key, if registered.
func (r *Registry) Lookup(key string) (ports.ActionHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[key]
	return h, ok
}

// Keys lists the registered action keys.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		keys = append(keys, k)
	}
	return keys
}
