package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-auth-service/internal/domain/repository"
	"github.com/oksasatya/go-ddd-auth-service/pkg/helpers"
)

type BannedTokenStore struct {
	rdb *redis.Client
}

func NewBannedTokenStore(rdb *redis.Client) *BannedTokenStore {
	return &BannedTokenStore{rdb: rdb}
}

// BanToken is a no-op for tokens that have already expired.
func (s *BannedTokenStore) BanToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, helpers.KeyBannedToken(token), "1", ttl).Err(); err != nil {
		return repository.Unexpected("redis ban token", err)
	}
	return nil
}

func (s *BannedTokenStore) IsBanned(ctx context.Context, token string) (bool, error) {
	n, err := s.rdb.Exists(ctx, helpers.KeyBannedToken(token)).Result()
	if err != nil {
		return false, repository.Unexpected("redis check banned token", err)
	}
	return n == 1, nil
}

var _ repository.BannedTokenStore = (*BannedTokenStore)(nil)
