package ports

import (
	"context"

	"github.com/userhub/user-api/internal/core/domain"
)

// UserRepository defines the persistence contract for user records.
// Email lookups are exact-match, case-sensitive as stored.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id int64, fields UpdateUserFields) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// UpdateUserFields carries the partial update applied by PUT /users/:id.
// Nil pointers mean "leave unchanged".
type UpdateUserFields struct {
	Email *string
	Name  *string
	Role  *string
}
