package adapter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient defines the interface for Redis operations to enable mocking.
// It covers the two concerns this service has: lease locks (SetNX/Eval) and
// short-lived caching (Get/Set).
//
//go:generate mockgen -source=redis.go -destination=../mocks/redis.go -package=mocks -mock_names=RedisClient=MockRedisClient
type RedisClient interface {
	// Ping checks if Redis is reachable
	Ping(ctx context.Context) error

	// SetNX sets key to value only when the key does not exist, with a TTL.
	// Returns true when the key was set.
	SetNX(ctx context.Context, key string, value string, expiration time.Duration) (bool, error)

	// Eval runs a Lua script against the given keys and arguments
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error)

	// Get returns the value of key, or redis.Nil-wrapped error when absent
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key with a TTL
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Close closes the Redis connection
	Close() error
}

// RealRedisClient wraps the actual Redis client
type RealRedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client
func NewRedisClient(addr, password string, db int) RedisClient {
	return &RealRedisClient{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (r *RealRedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RealRedisClient) SetNX(ctx context.Context, key string, value string, expiration time.Duration) (bool, error) {
	return r.client.SetNX(ctx, key, value, expiration).Result()
}

func (r *RealRedisClient) Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error) {
	return r.client.Eval(ctx, script, keys, args...).Result()
}

func (r *RealRedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *RealRedisClient) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *RealRedisClient) Close() error {
	return r.client.Close()
}

// IsRedisNil reports whether err means "key not found"
func IsRedisNil(err error) bool {
	return err == redis.Nil
}
