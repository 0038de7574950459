package ports

import (
	"context"

	"github.com/jobboard/users-api/internal/core/domain"
)

// UserCache is a best-effort read-through cache for user lookups by id.
// A miss is (nil, nil); cache failures must never fail the request.
type UserCache interface {
	Get(ctx context.Context, id int) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, id int) error
}
