// Package ratelimit provides a Redis-backed sliding window limiter used
// to slow credential brute-forcing on the auth endpoints.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result is the outcome of a rate limit check.
type Result struct {
	Allowed    bool
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// SlidingWindowLimiter tracks request timestamps per key in a Redis
// sorted set and counts the entries inside the moving window.
type SlidingWindowLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewSlidingWindowLimiter creates a limiter allowing limit requests per
// window for each key.
func NewSlidingWindowLimiter(client *redis.Client, limit int, window time.Duration, prefix string) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
	}
}

// allowScript atomically expires old entries, counts the window and
// records the request when under the limit. An INCR counter makes entry
// members unique.
var allowScript = redis.NewScript(`
	local key = KEYS[1]
	local counter_key = KEYS[2]
	local now = tonumber(ARGV[1])
	local window_start = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local window_ms = tonumber(ARGV[4])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)
	local count = redis.call('ZCARD', key)

	if count < limit then
		local counter = redis.call('INCR', counter_key)
		redis.call('ZADD', key, now, now .. ':' .. counter)
		redis.call('PEXPIRE', key, window_ms)
		redis.call('PEXPIRE', counter_key, window_ms)
		return {1, limit - count - 1, 0}
	else
		local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
		local retry_after = 0
		if #oldest >= 2 then
			retry_after = oldest[2] + window_ms - now
		end
		return {0, 0, retry_after}
	end
`)

// Allow checks whether one more request for the key fits in the window.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (*Result, error) {
	now := time.Now()
	redisKey := l.prefix + key
	counterKey := redisKey + ":counter"

	raw, err := allowScript.Run(ctx, l.client, []string{redisKey, counterKey},
		now.UnixMilli(),
		now.Add(-l.window).UnixMilli(),
		l.limit,
		l.window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to run rate limit script: %w", err)
	}
	if len(raw) != 3 {
		return nil, fmt.Errorf("unexpected rate limit script result length: %d", len(raw))
	}

	result := &Result{
		Allowed:   raw[0] == 1,
		Remaining: int(raw[1]),
		ResetAt:   now.Add(l.window),
	}
	if !result.Allowed && raw[2] > 0 {
		result.RetryAfter = time.Duration(raw[2]) * time.Millisecond
	}
	return result, nil
}

// Limit returns the configured per-window request limit.
func (l *SlidingWindowLimiter) Limit() int {
	return l.limit
}
