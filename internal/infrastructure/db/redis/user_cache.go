package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobboard/users-api/internal/core/domain"
)

const userCacheTTL = 5 * time.Minute

// UserCache is a read-through cache for user lookups backed by Redis.
// Key format: user:<id>
type UserCache struct {
	client *redis.Client
}

// NewUserCache creates a UserCache wrapping the given Redis client.
func NewUserCache(client *redis.Client) *UserCache {
	return &UserCache{client: client}
}

// Get returns the cached user, or (nil, nil) on a miss.
func (c *UserCache) Get(ctx context.Context, id int) (*domain.User, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user cache get: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		// A corrupt entry behaves like a miss; the repository wins.
		return nil, nil
	}
	user.PasswordHash = "" // never cached; see Set
	return &user, nil
}

// Set stores the user with a TTL. The password hash is stripped before
// marshalling so it never lands in Redis.
func (c *UserCache) Set(ctx context.Context, user *domain.User) error {
	clone := *user
	clone.PasswordHash = ""

	raw, err := json.Marshal(&clone)
	if err != nil {
		return fmt.Errorf("user cache marshal: %w", err)
	}
	return c.client.Set(ctx, c.key(user.ID), raw, userCacheTTL).Err()
}

// Invalidate drops the cached entry for id.
func (c *UserCache) Invalidate(ctx context.Context, id int) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *UserCache) key(id int) string {
	return fmt.Sprintf("user:%d", id)
}
