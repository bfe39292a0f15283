package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/ports"
)

const defaultIdentityTTL = 15 * time.Minute

// IdentityCache caches the mapping from auth-service user id to the user
// directory record id. Entries are advisory; a miss or a stale value only
// costs the resolver extra lookups, so writes are best effort with a short TTL.
type IdentityCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewIdentityCache creates a Redis-backed identity cache with the default TTL.
func NewIdentityCache(client redis.UniversalClient) *IdentityCache {
	return &IdentityCache{
		client: client,
		prefix: "identity:",
		ttl:    defaultIdentityTTL,
	}
}

// NewIdentityCacheWithTTL creates an identity cache with a custom TTL.
func NewIdentityCacheWithTTL(client redis.UniversalClient, ttl time.Duration) *IdentityCache {
	c := NewIdentityCache(client)
	if ttl > 0 {
		c.ttl = ttl
	}
	return c
}

// GetUserID returns the cached user record id for an auth-service user id.
// Returns ports.ErrCacheMiss when no entry exists.
func (c *IdentityCache) GetUserID(ctx context.Context, authID string) (string, error) {
	if authID == "" {
		return "", ports.ErrCacheMiss
	}
	val, err := c.client.Get(ctx, c.prefix+authID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrCacheMiss
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	if val == "" {
		return "", ports.ErrCacheMiss
	}
	return val, nil
}

// SetUserID stores the mapping for an auth-service user id.
func (c *IdentityCache) SetUserID(ctx context.Context, authID, userID string) error {
	if authID == "" || userID == "" {
		return errors.New("auth id and user id are required")
	}
	return c.client.Set(ctx, c.prefix+authID, userID, c.ttl).Err()
}

// Invalidate drops the cached mapping. Called on sign-out so a later session
// never resolves through another account's stale entry.
func (c *IdentityCache) Invalidate(ctx context.Context, authID string) error {
	if authID == "" {
		return nil
	}
	return c.client.Del(ctx, c.prefix+authID).Err()
}
