package ports

import (
	"context"

	"github.com/jobboard/users-api/internal/core/domain"
)

// UserRepository defines the persistence boundary for user accounts.
// Lookups return (nil, nil) when no record matches; errors are reserved for
// infrastructure failures.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int) error
}
