package tokenstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/amirhosseinghanipour/folio/internal/application/ports"
)

// RedisKey is where RedisStore keeps the token.
const RedisKey = "folio:" + ports.TokenKey

// RedisStore keeps the token in Redis so several front-end instances share one admin session.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Token(ctx context.Context) (string, error) {
	v, err := s.client.Get(ctx, RedisKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

func (s *RedisStore) SetToken(ctx context.Context, token string) error {
	return s.client.Set(ctx, RedisKey, token, 0).Err()
}

func (s *RedisStore) ClearToken(ctx context.Context) error {
	return s.client.Del(ctx, RedisKey).Err()
}

var _ ports.TokenStore = (*RedisStore)(nil)
