package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the preset payload under a single Redis key without expiry.
type RedisStore struct {
	Client *redis.Client
	key    string
}

// NewRedisClient connects and pings the server.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{Client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	val, err := s.Client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get presets from redis: %w", err)
	}
	return val, nil
}

func (s *RedisStore) Save(ctx context.Context, payload []byte) error {
	if err := s.Client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to set presets in redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if s.Client != nil {
		return s.Client.Close()
	}
	return nil
}
