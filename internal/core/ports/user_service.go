package ports

import (
	"context"
	"time"

	"github.com/jobboard/users-api/internal/core/domain"
)

// CreateUserInput carries all data needed to create a new account.
// Password is plaintext here; the service hashes it before persistence.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	BirthDate *time.Time
	Phone     string
}

// UpdateUserInput carries a partial update. Nil fields are left untouched.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	BirthDate *time.Time
	Phone     *string
	Role      *domain.Role
}

// UserService exposes user CRUD with ownership-or-admin authorization on
// mutations. Update and Delete report domain.ErrUserNotFound before
// domain.ErrForbidden: existence is checked first.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id int) (*domain.User, error)
	Update(ctx context.Context, actor domain.Identity, id int, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Identity, id int) error
}
