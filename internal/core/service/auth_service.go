package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobboard/users-api/internal/core/domain"
	"github.com/jobboard/users-api/internal/core/ports"
)

// AuthService validates credentials and opens sessions.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, audit ports.AuditRecorder, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, audit: audit, logger: logger}
}

// Validate checks email+password against the store. Unknown email and wrong
// password both return (nil, nil): collapsing the two outcomes keeps the API
// from leaking which accounts exist.
func (s *AuthService) Validate(ctx context.Context, email, password string) (*domain.Identity, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil
	}

	return &domain.Identity{ID: user.ID, Role: user.Role}, nil
}

// SignIn validates credentials and issues a session token. Any credential
// mismatch surfaces as domain.ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	identity, err := s.Validate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	if identity == nil {
		s.audit.Record(domain.AuditEvent{
			Action:     domain.AuditSignInFailed,
			Email:      strings.ToLower(email),
			OccurredAt: time.Now().UTC(),
		})
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(*identity)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", identity.ID).Msg("failed to issue token")
		return "", nil, err
	}

	s.audit.Record(domain.AuditEvent{
		UserID:     identity.ID,
		ActorID:    identity.ID,
		Action:     domain.AuditSignIn,
		Email:      strings.ToLower(email),
		OccurredAt: time.Now().UTC(),
	})
	s.logger.Info().Int("user_id", identity.ID).Msg("user signed in")

	return token, identity, nil
}
