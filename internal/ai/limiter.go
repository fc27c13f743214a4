package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	perMinuteLimit = 5
	perDayLimit    = 50
)

// Limiter enforces the assistant's fixed-window rate limits in Redis:
// per-minute and per-day counters per caller key.
type Limiter struct {
	client *redis.Client
}

// NewLimiter creates a limiter over the given Redis client.
func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

// AnonKey derives the rate-limit key for an unauthenticated caller from its
// IP and user agent.
func AnonKey(ip, userAgent string) string {
	sum := sha256.Sum256([]byte(ip + ":" + userAgent))
	return "anon:" + hex.EncodeToString(sum[:])[:16]
}

// UserKey derives the rate-limit key for an authenticated caller.
func UserKey(userID string) string {
	return "user:" + userID
}

// Allow consumes one request for the caller. When a window is exhausted it
// returns false with the seconds until that window resets.
func (l *Limiter) Allow(ctx context.Context, callerKey string) (allowed bool, retryAfter int, err error) {
	now := time.Now().UTC()
	minuteKey := fmt.Sprintf("ai:rl:m:%s:%s", callerKey, now.Format("200601021504"))
	dayKey := fmt.Sprintf("ai:rl:d:%s:%s", callerKey, now.Format("20060102"))

	pipe := l.client.TxPipeline()
	minuteCount := pipe.Incr(ctx, minuteKey)
	pipe.Expire(ctx, minuteKey, 2*time.Minute)
	dayCount := pipe.Incr(ctx, dayKey)
	pipe.Expire(ctx, dayKey, 25*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	if dayCount.Val() > perDayLimit {
		midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
		return false, int(time.Until(midnight).Seconds()) + 1, nil
	}
	if minuteCount.Val() > perMinuteLimit {
		nextMinute := now.Truncate(time.Minute).Add(time.Minute)
		return false, int(time.Until(nextMinute).Seconds()) + 1, nil
	}
	return true, 0, nil
}
