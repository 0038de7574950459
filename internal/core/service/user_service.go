package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobboard/users-api/internal/core/domain"
	"github.com/jobboard/users-api/internal/core/ports"
)

// UserService implements user CRUD with ownership-or-admin authorization on
// mutations.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	cache  ports.UserCache
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, cache ports.UserCache, audit ports.AuditRecorder, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, cache: cache, audit: audit, logger: logger}
}

// Create registers a new account. The email is normalized to lower case and
// must be unused; the password is hashed before it touches the repository.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	email := strings.ToLower(input.Email)

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		PasswordHash: hash,
		BirthDate:    input.BirthDate,
		Phone:        input.Phone,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		UserID:     created.ID,
		Action:     domain.AuditUserCreated,
		Email:      created.Email,
		OccurredAt: now,
	})
	s.logger.Info().Int("user_id", created.ID).Msg("user created")

	return created, nil
}

// Get fetches a user by id, consulting the cache first. Cache failures are
// logged and ignored; the repository stays authoritative.
func (s *UserService) Get(ctx context.Context, id int) (*domain.User, error) {
	if cached, err := s.cache.Get(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int("user_id", id).Msg("user cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if err := s.cache.Set(ctx, user); err != nil {
		s.logger.Warn().Err(err).Int("user_id", id).Msg("user cache write failed")
	}
	return user, nil
}

// Update applies a partial update to the user identified by id. Existence is
// checked before authorization so a nonexistent target reports not-found even
// to an actor that would not have been allowed to touch it.
func (s *UserService) Update(ctx context.Context, actor domain.Identity, id int, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if !actor.CanManage(user.ID) {
		return nil, domain.ErrForbidden
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil {
		user.Email = strings.ToLower(*input.Email)
	}
	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if input.BirthDate != nil {
		user.BirthDate = input.BirthDate
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int("user_id", id).Msg("user cache invalidation failed")
	}

	s.audit.Record(domain.AuditEvent{
		UserID:     updated.ID,
		ActorID:    actor.ID,
		Action:     domain.AuditUserUpdated,
		Email:      updated.Email,
		OccurredAt: updated.UpdatedAt,
	})
	s.logger.Info().Int("user_id", updated.ID).Int("actor_id", actor.ID).Msg("user updated")

	return updated, nil
}

// Delete removes the user identified by id under the same not-found-before-
// forbidden discipline as Update.
func (s *UserService) Delete(ctx context.Context, actor domain.Identity, id int) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	if !actor.CanManage(user.ID) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int("user_id", id).Msg("user cache invalidation failed")
	}

	s.audit.Record(domain.AuditEvent{
		UserID:     user.ID,
		ActorID:    actor.ID,
		Action:     domain.AuditUserDeleted,
		Email:      user.Email,
		OccurredAt: time.Now().UTC(),
	})
	s.logger.Info().Int("user_id", user.ID).Int("actor_id", actor.ID).Msg("user deleted")

	return nil
}
