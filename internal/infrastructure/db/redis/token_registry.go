package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRegistry records consumed refresh tokens so a rotated token cannot
// be replayed. Key format: refresh_used:<jti>
type TokenRegistry struct {
	client *redis.Client
}

func NewTokenRegistry(client *redis.Client) *TokenRegistry {
	return &TokenRegistry{client: client}
}

// IsConsumed reports whether this jti has already been used in a refresh.
func (r *TokenRegistry) IsConsumed(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("registry check: %w", err)
	}
	return n > 0, nil
}

// Consume marks the jti used. The mark expires with the token itself, so
// the registry never grows beyond the set of live refresh tokens.
func (r *TokenRegistry) Consume(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Second
	}
	return r.client.Set(ctx, r.key(jti), "1", ttl).Err()
}

func (r *TokenRegistry) key(jti string) string {
	return "refresh_used:" + jti
}
