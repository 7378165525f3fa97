package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/bobcode/ussd/pkg/ports"
)

// Locker implements ports.DistributedLocker using Redis SET NX PX.
// Used to serialize same-session requests across gateway replicas.
type Locker struct {
	client *backend.Client
	prefix string
}

// NewLocker creates a locker sharing the store's client.
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{
		client: client,
		prefix: prefix,
	}
}

// Lock polls until the lock is acquired or the context ends.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	lockKey := l.prefix + "lock:" + key
	val := fmt.Sprintf("%d", time.Now().UnixNano())

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, lockKey, val, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis acquire lock %s: %w", key, err)
		}
		if ok {
			return func(ctx context.Context) error {
				// Delete only if we still hold it.
				script := `
					if redis.call("get", KEYS[1]) == ARGV[1] then
						return redis.call("del", KEYS[1])
					else
						return 0
					end
				`
				return l.client.Eval(ctx, script, []string{lockKey}, val).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
