package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "AUTH_SECRET", "ACCESS_TOKEN_TTL_MINUTES",
		"REFRESH_TOKEN_TTL_HOURS", "BCRYPT_COST", "AUTH_RATE_LIMIT", "ALLOWED_ORIGINS", "MAX_DB_CONNS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, DefaultAuthSecret, cfg.AuthSecret)
	assert.True(t, cfg.UsesDefaultSecret())
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 30, cfg.AuthRateLimit)
	assert.Equal(t, int32(16), cfg.MaxDBConns)
	assert.Nil(t, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_SECRET", "s3cret")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "5")
	t.Setenv("AUTH_RATE_LIMIT", "0")
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example ")

	cfg := Load()
	assert.False(t, cfg.UsesDefaultSecret())
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 0, cfg.AuthRateLimit)
	assert.Equal(t, 10, cfg.BcryptCost, "unparsable values fall back")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "revoked:abc", CacheKey.RevokedTokenKey("abc"))
	assert.Equal(t, "ratelimit:auth:", CacheKey.AuthRateLimitPrefix())
}

func TestLoad_NonPositiveTTLFallsBack(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "0")
	t.Setenv("REFRESH_TOKEN_TTL_HOURS", "-3")

	cfg := Load()
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
}
