package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pageKeyPrefix = "zoo:page:" // respuesta serializada: zoo:page:{key}
	tagSetPrefix  = "zoo:tag:"  // set de keys por tag: zoo:tag:{tag}
)

// RedisBackend guarda las respuestas en Redis.
// Los sets de tags no expiran: se limpian en Invalidate.
type RedisBackend struct {
	client redis.UniversalClient
}

func NewRedisBackend(client redis.UniversalClient) *RedisBackend {
	return &RedisBackend{client: client}
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := b.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cache entry: %w", err)
	}
	return data, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags []string) error {
	pipe := b.client.TxPipeline()
	pipe.Set(ctx, pageKeyPrefix+key, value, ttl)
	for _, t := range tags {
		pipe.SAdd(ctx, tagSetPrefix+t, key)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}
	return nil
}

func (b *RedisBackend) Invalidate(ctx context.Context, tags ...string) error {
	for _, t := range tags {
		tagKey := tagSetPrefix + t

		keys, err := b.client.SMembers(ctx, tagKey).Result()
		if err != nil {
			return fmt.Errorf("failed to list keys for tag %q: %w", t, err)
		}

		pipe := b.client.TxPipeline()
		for _, k := range keys {
			pipe.Del(ctx, pageKeyPrefix+k)
		}
		pipe.Del(ctx, tagKey)

		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("failed to invalidate tag %q: %w", t, err)
		}
	}
	return nil
}
