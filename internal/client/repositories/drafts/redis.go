package drafts

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// DefaultRedisKey is the hash all drafts are stored in.
const DefaultRedisKey = "textdesk:drafts"

// hashClient is the part of *redis.Client the repository needs.
type hashClient interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.StringStringMapCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type RedisRepository struct {
	rdb  hashClient
	hash string
}

func NewRedisRepository(rdb hashClient, hash string) *RedisRepository {
	if hash == "" {
		hash = DefaultRedisKey
	}
	return &RedisRepository{rdb: rdb, hash: hash}
}

func (r *RedisRepository) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.rdb.HGet(ctx, r.hash, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis hget %s: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisRepository) Set(ctx context.Context, key, value string) error {
	if err := r.rdb.HSet(ctx, r.hash, key, value).Err(); err != nil {
		return fmt.Errorf("redis hset %s: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) List(ctx context.Context) (map[string]string, error) {
	m, err := r.rdb.HGetAll(ctx, r.hash).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}
	return m, nil
}

func (r *RedisRepository) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.hash).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
