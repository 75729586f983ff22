// Package lock provides a Redis lease lock that keeps at most one instance
// of a scheduled job running at a time. The lease expires on its own, so a
// crashed holder never blocks future runs.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clickchain/settlement/internal/adapter"
	"github.com/clickchain/settlement/internal/domain"
)

// releaseScript deletes the lock key only when it still holds our token,
// so an expired lease taken over by another runner is never released by us.
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

// JobLock acquires and releases a lease for a named job.
//
//go:generate mockgen -source=lock.go -destination=../mocks/lock.go -package=mocks -mock_names=JobLock=MockJobLock
type JobLock interface {
	// TryAcquire attempts to take the lease for jobName without blocking.
	// It returns domain.ErrLockBusy when another runner holds it.
	TryAcquire(ctx context.Context, jobName string) (Lease, error)
}

// Lease is a held job lock. Release is safe to call after the lease has
// already expired.
type Lease interface {
	Release(ctx context.Context) error
}

type redisLock struct {
	redis adapter.RedisClient
	ttl   time.Duration
}

type redisLease struct {
	redis adapter.RedisClient
	key   string
	token string
}

// NewRedisLock creates a job lock with the given lease TTL
func NewRedisLock(redis adapter.RedisClient, ttl time.Duration) JobLock {
	return &redisLock{redis: redis, ttl: ttl}
}

func (l *redisLock) TryAcquire(ctx context.Context, jobName string) (Lease, error) {
	key := lockKey(jobName)
	token := uuid.NewString()

	ok, err := l.redis.SetNX(ctx, key, token, l.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, domain.ErrLockBusy
	}

	return &redisLease{redis: l.redis, key: key, token: token}, nil
}

func (l *redisLease) Release(ctx context.Context) error {
	if _, err := l.redis.Eval(ctx, releaseScript, []string{l.key}, l.token); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", l.key, err)
	}
	return nil
}

func lockKey(jobName string) string {
	return fmt.Sprintf("settlement:lock:%s", jobName)
}
