// Package coordination provides a Redis-backed distributed lock, used
// to serialize the job-finish check across frontier daemon processes:
// store-level row locking already makes claim/disclaim safe, but
// "every site under this job just went terminal, mark the job
// finished" needs its own mutual exclusion so two workers completing
// the job's last two sites at once don't both race to finish it.
package coordination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultLockTTL is the default lock time-to-live.
const DefaultLockTTL = 30 * time.Second

// ErrLockNotHeld is returned when trying to release a lock that is not held.
var ErrLockNotHeld = errors.New("lock not held")

// DistributedLock represents a distributed lock using Redis.
//
// Only TryLock/Unlock are exercised by JobFinishLocker, which needs
// non-blocking acquisition (losing the race just means another worker
// is already running the critical section). A blocking Lock, TTL
// extension, and introspection methods have no caller in this frontier,
// so they are left out rather than kept unused.
type DistributedLock struct {
	client *redis.Client
	key    string
	token  string
	ttl    time.Duration
}

// LockConfig holds configuration for a distributed lock.
type LockConfig struct {
	TTL time.Duration // Lock TTL (default: 30s)
}

// DefaultLockConfig returns a LockConfig with sensible defaults.
func DefaultLockConfig() LockConfig {
	return LockConfig{TTL: DefaultLockTTL}
}

// NewDistributedLock creates a new distributed lock.
func NewDistributedLock(client *redis.Client, key string, cfg LockConfig) *DistributedLock {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultLockTTL
	}

	return &DistributedLock{
		client: client,
		key:    key,
		token:  uuid.New().String(),
		ttl:    cfg.TTL,
	}
}

// TryLock attempts to acquire the lock without blocking.
// Returns true if the lock was acquired, false otherwise.
func (l *DistributedLock) TryLock(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	return ok, nil
}

// Unlock releases the lock if it is held by this instance.
func (l *DistributedLock) Unlock(ctx context.Context) error {
	// Use Lua script to atomically check and delete
	script := redis.NewScript(`
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		else
			return 0
		end
	`)

	result, err := script.Run(ctx, l.client, []string{l.key}, l.token).Int()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if result == 0 {
		return ErrLockNotHeld
	}
	return nil
}
