package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/userhub/user-api/internal/core/domain"
	"github.com/userhub/user-api/internal/core/ports"
	"github.com/userhub/user-api/internal/core/token"
)

// AuthService implements registration, login and token refresh.
//
// The registry is optional: when nil the service is fully stateless and a
// refresh token stays valid for its whole window even after being used.
// When set, each refresh token is one-use.
type AuthService struct {
	repo     ports.UserRepository
	codec    *token.Codec
	registry ports.RefreshTokenRegistry
	logger   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, codec *token.Codec, registry ports.RefreshTokenRegistry, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, registry: registry, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, email, password, name, role string) (*domain.User, error) {
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login checks the credentials and mints a fresh token pair. A missing user
// and a wrong password return the exact same error so responses cannot be
// used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, *domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("login succeeded")
	return pair, user, nil
}

// Refresh verifies a refresh token and mints a new pair from its claims.
// Verification failure and a wrong token type collapse to the same error.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrMissingRefreshToken
	}

	claims, err := s.codec.Verify(refreshToken)
	if err != nil {
		s.logger.Debug().Err(err).Msg("refresh token rejected")
		return nil, domain.ErrInvalidRefreshToken
	}
	if claims.TokenType != token.TypeRefresh {
		return nil, domain.ErrInvalidRefreshToken
	}

	if s.registry != nil {
		consumed, err := s.registry.IsConsumed(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if consumed {
			return nil, domain.ErrInvalidRefreshToken
		}
	}

	pair, err := s.issuePair(claims.UserID, claims.Role)
	if err != nil {
		return nil, err
	}

	if s.registry != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if ttl < 0 {
			ttl = 0
		}
		if err := s.registry.Consume(ctx, claims.ID, ttl); err != nil {
			return nil, err
		}
	}

	return pair, nil
}

func (s *AuthService) issuePair(userID int64, role string) (*ports.TokenPair, error) {
	access, err := s.codec.IssueAccess(userID, role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.IssueRefresh(userID, role)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
