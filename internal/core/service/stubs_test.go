package service

import (
	"context"

	"github.com/jobboard/users-api/internal/core/domain"
)

// stubUserRepo is an in-memory UserRepository keyed by id.
type stubUserRepo struct {
	users  map[int]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int) (*domain.User, error) {
	return cloneUser(r.users[id]), nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.nextID++
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// stubHasher marks hashes with a prefix so tests can verify plaintext never
// reaches the repository.
type stubHasher struct{}

func (stubHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }

func (stubHasher) Verify(plaintext, hash string) bool { return "hashed:"+plaintext == hash }

// stubCache is a no-op UserCache recording invalidations.
type stubCache struct {
	invalidated []int
}

func (c *stubCache) Get(context.Context, int) (*domain.User, error) { return nil, nil }

func (c *stubCache) Set(context.Context, *domain.User) error { return nil }

func (c *stubCache) Invalidate(_ context.Context, id int) error {
	c.invalidated = append(c.invalidated, id)
	return nil
}

// stubAudit records audit events synchronously.
type stubAudit struct {
	events []domain.AuditEvent
}

func (a *stubAudit) Record(event domain.AuditEvent) {
	a.events = append(a.events, event)
}
