package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
)

// LoginLimiter implements fixed-window rate limiting for admin login attempts,
// keyed by client address.
type LoginLimiter struct {
	rdb    *goredis.Client
	clock  clockwork.Clock
	limit  int
	window time.Duration
}

// NewLoginLimiter creates a login limiter allowing limit attempts per window.
func NewLoginLimiter(rdb *goredis.Client, clock clockwork.Clock, limit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{rdb: rdb, clock: clock, limit: limit, window: window}
}

// Allow reports whether another login attempt is permitted for the client.
// The attempt is counted regardless of outcome.
func (l *LoginLimiter) Allow(ctx context.Context, clientAddr string) (bool, error) {
	key := loginKey(clientAddr, l.clock.Now(), l.window)

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to count login attempt: %w", err)
	}

	return incr.Val() <= int64(l.limit), nil
}

func loginKey(clientAddr string, now time.Time, window time.Duration) string {
	bucket := now.UnixNano() / int64(window)
	return fmt.Sprintf("login_attempts:%s:%d", clientAddr, bucket)
}
