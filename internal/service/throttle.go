package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter tracks failed logins per email address.
type LoginLimiter interface {
	Allowed(ctx context.Context, email string) (bool, error)
	Failed(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

type redisLoginLimiter struct {
	redis       *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter returns a Redis-backed limiter, or a limiter that never
// blocks when redisClient is nil.
func NewLoginLimiter(redisClient *redis.Client, maxAttempts int, window time.Duration) LoginLimiter {
	if redisClient == nil {
		return noopLimiter{}
	}
	return &redisLoginLimiter{
		redis:       redisClient,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

func failureKey(email string) string {
	return fmt.Sprintf("login_failures:%s", strings.ToLower(strings.TrimSpace(email)))
}

func (l *redisLoginLimiter) Allowed(ctx context.Context, email string) (bool, error) {
	count, err := l.redis.Get(ctx, failureKey(email)).Int()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read login failures: %w", err)
	}
	return count < l.maxAttempts, nil
}

// Failed counts a failure. The window starts at the first failure.
func (l *redisLoginLimiter) Failed(ctx context.Context, email string) error {
	key := failureKey(email)
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to record login failure: %w", err)
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("failed to set login failure window: %w", err)
		}
	}
	return nil
}

func (l *redisLoginLimiter) Reset(ctx context.Context, email string) error {
	if err := l.redis.Del(ctx, failureKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to reset login failures: %w", err)
	}
	return nil
}

type noopLimiter struct{}

func (noopLimiter) Allowed(context.Context, string) (bool, error) { return true, nil }
func (noopLimiter) Failed(context.Context, string) error          { return nil }
func (noopLimiter) Reset(context.Context, string) error           { return nil }
