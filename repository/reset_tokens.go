package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jonascoder/surf-shop/utils"
	"github.com/redis/go-redis/v9"
)

type RedisTokenRepository struct {
	rdb *redis.Client
}

func NewTokenRepository(rdb *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{rdb: rdb}
}

func tokenKey(token string) string { return "reset:" + token }

func (r *RedisTokenRepository) Put(ctx context.Context, token, userID string, ttl time.Duration) error {
	return r.rdb.Set(ctx, tokenKey(token), userID, ttl).Err()
}

func (r *RedisTokenRepository) UserID(ctx context.Context, token string) (string, error) {
	userID, err := r.rdb.Get(ctx, tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", utils.ErrNotFound
	}
	return userID, err
}

func (r *RedisTokenRepository) Delete(ctx context.Context, token string) error {
	return r.rdb.Del(ctx, tokenKey(token)).Err()
}
