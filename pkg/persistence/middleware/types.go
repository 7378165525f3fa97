// Package middleware wraps a SessionStore with cross-cutting behavior:
// at-rest encryption of the session payload and PII masking of
// data-bag keys before they are persisted.
package middleware

import "github.com/bobcode/ussd/pkg/ports"

// Middleware wraps a SessionStore to add behavior.
type Middleware func(ports.SessionStore) ports.SessionStore

// Chain applies middlewares outermost-first.
func Chain(store ports.SessionStore, mws ...Middleware) ports.SessionStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
