package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates same-session serialization across
// replicas. The engine itself performs no locking, it assumes the
// gateway sends one leg at a time; this contract exists for
// deployments where that upstream guarantee does not hold.
type DistributedLocker interface {
	// Lock blocks until the lock for key is acquired, the context is
	// canceled, or the TTL lapses. The returned UnlockFunc must be called.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
