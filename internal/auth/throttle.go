package auth

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ThrottleStore is the slice of the Redis API the throttle depends on.
// *redis.Client satisfies it.
type ThrottleStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// LoginThrottle caps failed-login bursts per login key using a Redis counter
// with a window TTL. It is advisory: if Redis is unreachable the check passes,
// since auth correctness never depends on the throttle.
type LoginThrottle struct {
	store       ThrottleStore
	logger      *zap.Logger
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle constructs the throttle. A nil store disables it.
func NewLoginThrottle(store ThrottleStore, logger *zap.Logger, maxAttempts int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{store: store, logger: logger, maxAttempts: maxAttempts, window: window}
}

// Allow reports whether another login attempt for the key may proceed.
func (t *LoginThrottle) Allow(ctx context.Context, loginKey string) bool {
	if t == nil || t.store == nil || t.maxAttempts <= 0 {
		return true
	}
	count, err := t.store.Get(ctx, t.key(loginKey)).Int()
	if err != nil && err != redis.Nil {
		t.logger.Warn("login throttle unavailable", zap.Error(err))
		return true
	}
	return count < t.maxAttempts
}

// RecordFailure counts a failed attempt against the key.
func (t *LoginThrottle) RecordFailure(ctx context.Context, loginKey string) {
	if t == nil || t.store == nil || t.maxAttempts <= 0 {
		return
	}
	key := t.key(loginKey)
	count, err := t.store.Incr(ctx, key).Result()
	if err != nil {
		t.logger.Warn("login throttle unavailable", zap.Error(err))
		return
	}
	if count == 1 {
		_ = t.store.Expire(ctx, key, t.window).Err()
	}
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, loginKey string) {
	if t == nil || t.store == nil {
		return
	}
	_ = t.store.Del(ctx, t.key(loginKey)).Err()
}

func (t *LoginThrottle) key(loginKey string) string {
	return "login_attempts:" + strings.ToLower(loginKey)
}
