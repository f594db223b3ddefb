package ports

import (
	"context"

	"github.com/userhub/user-api/internal/core/domain"
)

// TokenPair is the access/refresh pair minted on login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Register(ctx context.Context, email, password, name, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, *domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}
