package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoker remembers revoked token IDs until the tokens would have expired anyway
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// MemoryRevoker keeps revoked IDs in process memory
type MemoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time // jti -> expiry
	now     func() time.Time
}

// NewMemoryRevoker creates an empty in-memory revocation list
func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{revoked: make(map[string]time.Time), now: time.Now}
}

// Revoke records jti until ttl elapses
func (r *MemoryRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, exp := range r.revoked {
		if !exp.After(now) {
			delete(r.revoked, id)
		}
	}
	if ttl > 0 {
		r.revoked[jti] = now.Add(ttl)
	}
	return nil
}

// IsRevoked reports whether jti is still on the list
func (r *MemoryRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exp, ok := r.revoked[jti]
	return ok && exp.After(r.now()), nil
}

// RedisRevoker stores revoked IDs as expiring Redis keys
type RedisRevoker struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisRevoker uses an existing Redis client
func NewRedisRevoker(client *redis.Client, keyPrefix string) *RedisRevoker {
	return &RedisRevoker{client: client, keyPrefix: keyPrefix + "token:revoked:"}
}

// Revoke stores jti with the remaining token lifetime as TTL
func (r *RedisRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired
	}
	if err := r.client.Set(ctx, r.keyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked checks for the jti key
func (r *RedisRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, r.keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revocation list: %w", err)
	}
	return n > 0, nil
}
