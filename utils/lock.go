package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrLockNotAcquired is returned when a lock could not be acquired within the
// acquire deadline.
var ErrLockNotAcquired = errors.New("lock not acquired within deadline")

const (
	workerLockPrefix = "lock:worker:"

	defaultOwnershipTTL    = 20 * time.Second
	defaultAcquireDeadline = 20 * time.Second
	defaultRetryInterval   = 50 * time.Millisecond
)

// releaseScript deletes the lock only if it is still owned by the caller's
// token, so an expired lock taken over by another holder is never released
// out from under them.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisWorkerLock is a per-worker distributed advisory lock on Redis.
// Distinct workers never contend: each worker has its own key. The ownership
// TTL bounds how long a crashed holder can block others.
type RedisWorkerLock struct {
	Client          *redis.Client
	OwnershipTTL    time.Duration
	AcquireDeadline time.Duration
	RetryInterval   time.Duration
}

// NewRedisWorkerLock builds a lock manager with the given bounds; zero values
// fall back to the 20s defaults.
func NewRedisWorkerLock(client *redis.Client, ownershipTTL, acquireDeadline time.Duration) *RedisWorkerLock {
	return &RedisWorkerLock{
		Client:          client,
		OwnershipTTL:    ownershipTTL,
		AcquireDeadline: acquireDeadline,
	}
}

func (l *RedisWorkerLock) ownershipTTL() time.Duration {
	if l.OwnershipTTL > 0 {
		return l.OwnershipTTL
	}
	return defaultOwnershipTTL
}

func (l *RedisWorkerLock) acquireDeadline() time.Duration {
	if l.AcquireDeadline > 0 {
		return l.AcquireDeadline
	}
	return defaultAcquireDeadline
}

func (l *RedisWorkerLock) retryInterval() time.Duration {
	if l.RetryInterval > 0 {
		return l.RetryInterval
	}
	return defaultRetryInterval
}

// WithWorkerLock runs fn while holding the worker's lock. The lock is
// released on every exit path; if it cannot be acquired before the deadline,
// ErrLockNotAcquired is returned and fn never runs.
func (l *RedisWorkerLock) WithWorkerLock(ctx context.Context, workerID string, fn func(ctx context.Context) error) error {
	key := workerLockPrefix + workerID
	token := uuid.New().String()

	acquireCtx, cancel := context.WithTimeout(ctx, l.acquireDeadline())
	defer cancel()

	ticker := time.NewTicker(l.retryInterval())
	defer ticker.Stop()

	for {
		ok, err := l.Client.SetNX(acquireCtx, key, token, l.ownershipTTL()).Result()
		if err != nil {
			if acquireCtx.Err() != nil {
				return ErrLockNotAcquired
			}
			return fmt.Errorf("acquiring lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-acquireCtx.Done():
			return ErrLockNotAcquired
		case <-ticker.C:
		}
	}

	defer func() {
		// Release must not depend on the caller's context still being alive.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if _, err := releaseScript.Run(releaseCtx, l.Client, []string{key}, token).Result(); err != nil {
			GetLogger().Sugar().Warnf("failed to release lock %s: %v", key, err)
		}
	}()

	return fn(ctx)
}
