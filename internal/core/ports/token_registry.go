package ports

import (
	"context"
	"time"
)

// RefreshTokenRegistry tracks consumed refresh tokens by jti. It is the
// extension point that turns the stateless token design into one-use
// refresh rotation: when wired into the auth service, a refresh token is
// marked consumed after a successful rotation and rejected on replay.
type RefreshTokenRegistry interface {
	// IsConsumed reports whether the token with this jti was already used.
	IsConsumed(ctx context.Context, jti string) (bool, error)
	// Consume marks the jti used; ttl bounds how long the mark is kept
	// (the remaining life of the token is enough).
	Consume(ctx context.Context, jti string, ttl time.Duration) error
}
