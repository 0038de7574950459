package ports

import (
	"context"

	"github.com/jobboard/users-api/internal/core/domain"
)

// AuthService validates credentials and opens sessions.
type AuthService interface {
	// Validate checks email+password against the store. It returns (nil, nil)
	// for both unknown email and wrong password so callers cannot tell which
	// part failed.
	Validate(ctx context.Context, email, password string) (*domain.Identity, error)

	// SignIn validates credentials and issues a session token. A failed match
	// returns domain.ErrInvalidCredentials.
	SignIn(ctx context.Context, email, password string) (string, *domain.Identity, error)
}
