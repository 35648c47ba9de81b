package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clubhouse/board/internal/core/ports"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps handle bindings in Redis with a TTL per key.
// Key format: session:<handle> -> <user_id>
type SessionStore struct {
	client *redis.Client
}

var _ ports.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save binds handle to userID; Redis expires the key after ttl.
func (s *SessionStore) Save(ctx context.Context, handle string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(handle), userID, ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Lookup returns the bound user id, or ok=false when the key is gone.
func (s *SessionStore) Lookup(ctx context.Context, handle string) (int64, bool, error) {
	val, err := s.client.Get(ctx, s.key(handle)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("session lookup: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("session lookup: corrupt binding: %w", err)
	}
	return userID, true, nil
}

// Delete removes the binding. Deleting a missing key is a no-op in Redis.
func (s *SessionStore) Delete(ctx context.Context, handle string) error {
	if err := s.client.Del(ctx, s.key(handle)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

// Ping checks connectivity for the readiness probe.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStore) key(handle string) string {
	return sessionKeyPrefix + handle
}
