package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/tutorly-backend/internal/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLimiter admits the first limit calls per key.
type countingLimiter struct {
	counts map[string]int
	err    error
}

func (l *countingLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (*RateLimitResult, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.counts[key]++
	n := l.counts[key]
	remaining := limit - n
	if remaining < 0 {
		remaining = 0
	}
	return &RateLimitResult{
		Allowed:   n <= limit,
		Remaining: remaining,
		ResetAt:   time.Now().Add(window),
		Limit:     limit,
	}, nil
}

func limitedRouter(l Limiter, limit int) *gin.Engine {
	r := gin.New()
	r.POST("/auth/login", RateLimit(l, limit, time.Minute, zerolog.Nop()), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func loginFrom(r http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = ip + ":5000"
	return serve(r, req)
}

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	r := limitedRouter(&countingLimiter{counts: map[string]int{}}, 2)

	first := loginFrom(r, "10.0.0.1")
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusNoContent, loginFrom(r, "10.0.0.1").Code)

	blocked := loginFrom(r, "10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, response.ErrRateLimited, decodeError(t, blocked).Code)

	retry, err := strconv.Atoi(blocked.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, retry, 1)

	assert.Equal(t, http.StatusNoContent, loginFrom(r, "10.0.0.2").Code, "limits are per client")
}

func TestRateLimit_FailsOpen(t *testing.T) {
	r := limitedRouter(&countingLimiter{err: errors.New("redis down")}, 1)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, loginFrom(r, "10.0.0.1").Code)
	}
}

func TestRateLimit_ZeroDisables(t *testing.T) {
	l := &countingLimiter{counts: map[string]int{}}
	r := limitedRouter(l, 0)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, loginFrom(r, "10.0.0.1").Code)
	}
	assert.Empty(t, l.counts)
}
