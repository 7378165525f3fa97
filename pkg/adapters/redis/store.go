// Package redis provides a SessionStore backed by Redis, for
// multi-instance deployments where gateway requests may land on any
// replica. Sessions are serialized as JSON; expiry rides on the key TTL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/bobcode/ussd/pkg/domain"
)

// Store implements ports.SessionStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
}

// Option configures the store.
type Option func(*Store)

// WithPrefix sets the key prefix for session entries.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a store around an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "ussd:sess:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(sessionID string) string {
	return s.prefix + sessionID
}

// Get retrieves and deserializes a session. Keys Redis has expired are
// simply absent.
func (s *Store) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session %s: %w", sessionID, err)
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("redis decode session %s: %w", sessionID, err)
	}
	return &session, nil
}

// Set serializes and upserts the session with the given TTL.
func (s *Store) Set(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	session.ExpireAt = time.Now().Add(ttl)

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis encode session %s: %w", session.ID, err)
	}
	if err := s.client.Set(ctx, s.key(session.ID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session %s: %w", session.ID, err)
	}
	return nil
}

// Remove deletes the session key.
func (s *Store) Remove(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete session %s: %w", sessionID, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
