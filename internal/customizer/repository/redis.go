package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RandalBristow/pizza-palace-sub000/internal/customizer"
	"github.com/RandalBristow/pizza-palace-sub000/internal/pkg/cache"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "customizer:session:"

type RedisRepository struct {
	client *cache.RedisClient
	ttl    time.Duration
}

func NewRedisRepository(client *cache.RedisClient, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Save writes the session and restarts its TTL.
func (r *RedisRepository) Save(ctx context.Context, s *customizer.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return r.client.Client.Set(ctx, sessionKey(s.ID), data, r.ttl).Err()
}

func (r *RedisRepository) Find(ctx context.Context, id string) (*customizer.Session, error) {
	val, err := r.client.Client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var s customizer.Session
	if err := json.Unmarshal(val, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return &s, nil
}

func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	return r.client.Client.Del(ctx, sessionKey(id)).Err()
}
