// Package redis holds the redis-backed adapters of the service.
package redis

import (
	"context"
	"time"

	"fooddelivery/internal/core/ports"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "delivery:attempts:"

var _ ports.AttemptLimiter = (*AttemptLimiter)(nil)

type cmdable interface {
	TxPipelined(context.Context, func(redis.Pipeliner) error) ([]redis.Cmder, error)
}

// AttemptLimiter is a fixed window counter. Every attempt increments the counter and
// sets the key expiry in one MULTI/EXEC; EXPIRE NX only applies when the key has none,
// so the window starts at the first attempt and the counter disappears with it.
type AttemptLimiter struct {
	store  cmdable
	limit  int64
	window time.Duration
}

// NewAttemptLimiter creates a limiter allowing limit attempts per key and window.
func NewAttemptLimiter(client *redis.Client, limit int64, window time.Duration) (*AttemptLimiter, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return newAttemptLimiter(client, limit, window)
}

func newAttemptLimiter(store cmdable, limit int64, window time.Duration) (*AttemptLimiter, error) {
	if limit <= 0 {
		return nil, errors.Errorf("attempt limit must be positive, got %d", limit)
	}
	if window <= 0 {
		return nil, errors.Errorf("attempt window must be positive, got %s", window)
	}
	return &AttemptLimiter{store: store, limit: limit, window: window}, nil
}

// Allow registers an attempt and reports whether it is within the limit.
func (l *AttemptLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("attempt key is required")
	}
	redisKey := keyPrefix + key

	var incr *redis.IntCmd
	_, err := l.store.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return false, errors.Wrap(err, "count attempt")
	}
	return incr.Val() <= l.limit, nil
}

// Limit returns the number of attempts allowed per window.
func (l *AttemptLimiter) Limit() int64 {
	return l.limit
}

// NewClient connects to redis and checks the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, errors.New("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "ping redis")
	}
	return client, nil
}
