package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores each document under <prefix><name>
type RedisBackend struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisBackend wraps a Redis client
func NewRedisBackend(rdb *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{rdb: rdb, prefix: prefix}
}

// Read gets the document key
func (b *RedisBackend) Read(ctx context.Context, name string) ([]byte, error) {
	body, err := b.rdb.Get(ctx, b.prefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return body, err
}

// Write sets the document key without expiry
func (b *RedisBackend) Write(ctx context.Context, name string, body []byte) error {
	return b.rdb.Set(ctx, b.prefix+name, body, 0).Err()
}
