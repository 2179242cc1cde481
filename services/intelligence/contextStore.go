// File: services/intelligence/contextStore.go
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fayano/models"

	"github.com/go-redis/redis/v8"
)

const aiContextPrefix = "ai:ctx:"

// RedisContextStore keeps each client's latest assistant result for wizard pre-fill.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

// Get returns nil, nil when the client has no stored context.
func (s *RedisContextStore) Get(ctx context.Context, clientID string) (*models.AIContext, error) {
	data, err := s.client.Get(ctx, aiContextPrefix+clientID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var aiCtx models.AIContext
	if err := json.Unmarshal([]byte(data), &aiCtx); err != nil {
		return nil, err
	}
	return &aiCtx, nil
}

func (s *RedisContextStore) Set(ctx context.Context, clientID string, aiCtx *models.AIContext) error {
	b, err := json.Marshal(aiCtx)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, aiContextPrefix+clientID, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, clientID string) error {
	return s.client.Del(ctx, aiContextPrefix+clientID).Err()
}
