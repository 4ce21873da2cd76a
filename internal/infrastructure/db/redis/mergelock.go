package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	mergeLockKey = "lock:contacts:merge"
	mergeLockTTL = 5 * time.Minute
)

// MergeLock guards the duplicate-merge batch with a Redis SETNX lock so
// concurrent merge requests cannot interleave their save/delete phases.
// The TTL bounds how long a crashed holder can block the next merge.
type MergeLock struct {
	client *redis.Client
}

// NewMergeLock creates a MergeLock wrapping the given Redis client.
func NewMergeLock(client *redis.Client) *MergeLock {
	return &MergeLock{client: client}
}

// Acquire attempts to take the lock. It returns false when another merge
// currently holds it.
func (l *MergeLock) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, mergeLockKey, "1", mergeLockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire merge lock: %w", err)
	}
	return ok, nil
}

// Release frees the lock. Releasing an already-expired lock is harmless.
func (l *MergeLock) Release(ctx context.Context) error {
	if err := l.client.Del(ctx, mergeLockKey).Err(); err != nil {
		return fmt.Errorf("release merge lock: %w", err)
	}
	return nil
}
