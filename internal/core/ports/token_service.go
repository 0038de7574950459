package ports

import "github.com/jobboard/users-api/internal/core/domain"

// TokenService issues and verifies signed session tokens. Both operations are
// pure over the configured secret; no I/O.
type TokenService interface {
	Issue(identity domain.Identity) (string, error)

	// Verify returns the identity embedded in the token, or an error wrapping
	// domain.ErrTokenInvalid when the token is malformed, tampered or expired.
	Verify(token string) (domain.Identity, error)
}
