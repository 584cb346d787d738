package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/tutorly-backend/internal/config"
)

// RevocationStore remembers token IDs that were invalidated before their
// natural expiry.
type RevocationStore interface {
	// Revoke marks jti as revoked for ttl, normally the token's remaining
	// lifetime. A non-positive ttl is a no-op since the token is already dead.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type redisRevocationStore struct {
	rdb *redis.Client
}

// NewRevocationStore creates a RevocationStore whose entries expire on their
// own in Redis.
func NewRevocationStore(rdb *redis.Client) RevocationStore {
	return &redisRevocationStore{rdb: rdb}
}

func (s *redisRevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return errors.New("revoke: empty token id")
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, config.CacheKey.RevokedTokenKey(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *redisRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	n, err := s.rdb.Exists(ctx, config.CacheKey.RevokedTokenKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return n > 0, nil
}
