package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
	domainRepo "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/repository"
)

const redisKeyPrefix = "compat:"

// RedisCache stores answer sets as JSON strings with a Redis TTL, so every
// instance of the service shares one cache.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an already connected client
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

var _ domainRepo.AnswerCache = (*RedisCache)(nil)

func (c *RedisCache) Get(ctx context.Context, key string) ([]model.Answer, bool, error) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	var answers []model.Answer
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return answers, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, answers []model.Answer, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	payload, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = redisKeyPrefix + key
	}
	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache keys: %w", err)
	}
	return nil
}
