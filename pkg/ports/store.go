package ports

import (
	"context"
	"time"

	"github.com/bobcode/ussd/pkg/domain"
)

// SessionStore persists sessions keyed by session ID.
//
// Implementations must provide per-ID read-after-write consistency
// within a process and must expire entries once the TTL passed to Set
// elapses. Distributed stores serialize the full session including the
// data bag; in-process stores may hold deep copies.
type SessionStore interface {
	// Get retrieves a session. Returns domain.ErrSessionNotFound when no
	// record exists (or the record has expired).
	Get(ctx context.Context, sessionID string) (*domain.Session, error)

	// Set upserts the session and refreshes its expiry to now+ttl.
	Set(ctx context.Context, session *domain.Session, ttl time.Duration) error

	// Remove deletes the session. Removing an absent ID is not an error.
	Remove(ctx context.Context, sessionID string) error
}
