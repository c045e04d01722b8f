package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRevocationStore keeps revoked tokens in Redis, keyed by token hash
// so raw credentials never land in the store.
type RedisRevocationStore struct {
	redis *redis.Client
}

func NewRedisRevocationStore(redisClient *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{redis: redisClient}
}

func revocationKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "safebite:revoked:" + hex.EncodeToString(sum[:])
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired; nothing to remember.
		return nil
	}
	return s.redis.Set(ctx, revocationKey(token), "1", ttl).Err()
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.redis.Exists(ctx, revocationKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
