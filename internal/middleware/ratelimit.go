package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/tutorly-backend/internal/response"
)

// RateLimitResult is the outcome of a single limiter check.
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
	Limit     int
}

// Limiter decides whether another request for key fits in the window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitResult, error)
}

// slidingWindowScript trims entries older than the window, then admits the
// request if fewer than limit remain. Returns {allowed, remaining, reset_ms}.
var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window_start = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local window_ms = tonumber(ARGV[4])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)
	local current = redis.call('ZCARD', key)

	if current < limit then
		local counter = redis.call('INCR', key .. ':seq')
		redis.call('ZADD', key, now, now .. ':' .. counter)
		local ttl = math.ceil(window_ms / 1000)
		redis.call('EXPIRE', key, ttl)
		redis.call('EXPIRE', key .. ':seq', ttl)
		return {1, limit - current - 1, 0}
	end

	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	local reset_at = 0
	if oldest and #oldest >= 2 then
		reset_at = tonumber(oldest[2]) + window_ms
	end
	return {0, 0, reset_at}
`)

// RedisLimiter is a sliding-window limiter shared by every server instance.
type RedisLimiter struct {
	rdb       *redis.Client
	keyPrefix string
	now       func() time.Time
}

// NewRedisLimiter creates a RedisLimiter storing windows under keyPrefix.
func NewRedisLimiter(rdb *redis.Client, keyPrefix string) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, keyPrefix: keyPrefix, now: time.Now}
}

// Allow records a request for key and reports whether it is within limit.
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitResult, error) {
	now := l.now()
	nowMs := now.UnixMilli()

	res, err := slidingWindowScript.Run(ctx, l.rdb, []string{l.keyPrefix + key},
		nowMs, now.Add(-window).UnixMilli(), limit, window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 3 {
		return nil, fmt.Errorf("rate limit script: unexpected reply length %d", len(res))
	}

	resetAt := now.Add(window)
	if res[2] > 0 {
		resetAt = time.UnixMilli(res[2])
	}
	return &RateLimitResult{
		Allowed:   res[0] == 1,
		Remaining: int(res[1]),
		ResetAt:   resetAt,
		Limit:     limit,
	}, nil
}

// RateLimit limits requests per client IP. Limiter failures are logged and
// the request is let through.
func RateLimit(limiter Limiter, limit int, window time.Duration, log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "rate_limit").Logger()

	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		res, err := limiter.Allow(c.Request.Context(), c.ClientIP(), limit, window)
		if err != nil {
			log.Warn().Err(err).Str("ip", c.ClientIP()).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			retry := time.Until(res.ResetAt)
			if retry < time.Second {
				retry = time.Second
			}
			c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())))
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimited)
			return
		}

		c.Next()
	}
}
