package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// RevokedTokenKey returns the key marking a token ID as revoked.
func (r *CacheKeyStruct) RevokedTokenKey(jti string) string {
	return fmt.Sprintf("revoked:%s", jti)
}

// AuthRateLimitPrefix returns the key prefix for per-IP limits on /auth routes.
func (r *CacheKeyStruct) AuthRateLimitPrefix() string {
	return "ratelimit:auth:"
}

var CacheKey = NewCacheKeyStruct()
