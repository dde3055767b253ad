package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aes-tool/configs"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session as a JSON value that Redis expires after ttl.
type RedisStore struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedisStore(redisClient *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redisClient: redisClient, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, id string) (State, error) {
	data, err := r.redisClient.Get(ctx, fmt.Sprintf(configs.SessionKey, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return State{}, ErrSessionNotFound
	}
	if err != nil {
		return State{}, fmt.Errorf("failed to read session: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return s, nil
}

func (r *RedisStore) Save(ctx context.Context, id string, s State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.redisClient.Set(ctx, fmt.Sprintf(configs.SessionKey, id), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.redisClient.Del(ctx, fmt.Sprintf(configs.SessionKey, id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.redisClient.Close()
}
