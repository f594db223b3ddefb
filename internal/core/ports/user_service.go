package ports

import (
	"context"

	"github.com/userhub/user-api/internal/core/domain"
)

type UserService interface {
	ListUsers(ctx context.Context) ([]domain.PublicUser, error)
	GetUser(ctx context.Context, id int64) (*domain.PublicUser, error)
	UpdateUser(ctx context.Context, id int64, fields UpdateUserFields) (*domain.PublicUser, error)
	DeleteUser(ctx context.Context, id int64) error
}
