package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetCodeStore keeps password-reset codes in Redis with a TTL, so codes
// survive process restarts and expire on their own instead of living in a
// process-global map.
type RedisResetCodeStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisResetCodeStore(client *redis.Client) *RedisResetCodeStore {
	return &RedisResetCodeStore{client: client, ttl: 15 * time.Minute}
}

type ResetCodeStore interface {
	SaveCode(email string, code string) error
	CheckCode(email string, code string) (bool, error)
	DeleteCode(email string) error
}

func (r *RedisResetCodeStore) key(email string) string {
	return "reset_code:" + email
}

func (r *RedisResetCodeStore) SaveCode(email string, code string) error {
	err := r.client.Set(context.Background(), r.key(email), code, r.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to save reset code: %w", err)
	}
	return nil
}

func (r *RedisResetCodeStore) CheckCode(email string, code string) (bool, error) {
	stored, err := r.client.Get(context.Background(), r.key(email)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check reset code: %w", err)
	}
	return stored == code, nil
}

func (r *RedisResetCodeStore) DeleteCode(email string) error {
	err := r.client.Del(context.Background(), r.key(email)).Err()
	if err != nil {
		return fmt.Errorf("failed to delete reset code: %w", err)
	}
	return nil
}
