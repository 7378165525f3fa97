// Package session provides per-session request serialization for
// deployments where the gateway does not guarantee one leg at a time.
// The navigation engine performs no locking of its own; hosts that need
// the guarantee wrap HandleRequest in Serializer.WithLock.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bobcode/ussd/internal/logging"
	"github.com/bobcode/ussd/pkg/ports"
)

// lockEntry holds the mutex and its reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Serializer hands out per-session-ID locks, garbage-collecting unused
// entries by reference counting. An optional DistributedLocker extends
// the guarantee across replicas.
type Serializer struct {
	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Serializer.
type Option func(*Serializer)

// WithDistributedLocker enables cross-replica locking.
func WithDistributedLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(s *Serializer) {
		s.locker = locker
		s.lockTTL = ttl
	}
}

// WithLogger configures a logger for deferred unlock failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Serializer) {
		s.logger = logger
	}
}

// NewSerializer creates a Serializer.
func NewSerializer(opts ...Option) *Serializer {
	s := &Serializer{
		locks:   make(map[string]*lockEntry),
		lockTTL: 30 * time.Second,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Serializer) acquire(sessionID string) *lockEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		s.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

func (s *Serializer) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.locks[sessionID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(s.locks, sessionID)
	}
}

// WithLock runs fn while holding the lock for sessionID.
func (s *Serializer) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := s.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		s.release(sessionID)
	}()

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, sessionID, s.lockTTL)
		if err != nil {
			return fmt.Errorf("acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				s.logger.Warn("failed to release distributed lock, it will expire via TTL",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
