package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "junglepets:"

// Redis is a Backend storing each slot as one Redis string value under a
// prefixed key.
type Redis struct {
	client *redis.Client
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) key(slot string) string {
	return redisKeyPrefix + slot
}

func (r *Redis) Get(ctx context.Context, slot string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(slot)).Bytes()
	if err == redis.Nil {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *Redis) Set(ctx context.Context, slot string, value []byte) error {
	// Slots live until explicitly removed; no TTL.
	return r.client.Set(ctx, r.key(slot), value, 0).Err()
}

func (r *Redis) Remove(ctx context.Context, slot string) error {
	return r.client.Del(ctx, r.key(slot)).Err()
}
