// Package memory provides an in-process SessionStore for single-node
// deployments and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bobcode/ussd/pkg/domain"
)

type entry struct {
	session  *domain.Session
	expireAt time.Time
}

// Store implements ports.SessionStore in memory. Safe for concurrent
// use. Expiry is enforced lazily on read; there is no background janitor.
type Store struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

// Option configures the store.
type Option func(*Store)

// WithClock overrides the time source. Used by tests to drive expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty in-memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		data: make(map[string]entry),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves a session, treating lapsed entries as absent.
func (s *Store) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	s.mu.RLock()
	e, ok := s.data[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if s.now().After(e.expireAt) {
		s.mu.Lock()
		delete(s.data, sessionID)
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}

	// Hand out a copy so the caller can't mutate stored state by pointer.
	return e.session.Clone(), nil
}

// Set upserts the session with a refreshed expiry.
func (s *Store) Set(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	stored := session.Clone()
	stored.ExpireAt = s.now().Add(ttl)
	session.ExpireAt = stored.ExpireAt

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[session.ID] = entry{session: stored, expireAt: stored.ExpireAt}
	return nil
}

// Remove deletes the session.
func (s *Store) Remove(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// Len reports the number of live entries, expired ones included until
// their next read.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
