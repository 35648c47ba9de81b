package memory

import (
	"context"
	"sync"
	"time"

	"github.com/clubhouse/board/internal/core/ports"
)

type binding struct {
	userID    int64
	expiresAt time.Time
}

// SessionStore is an in-process handle table. Expired entries are dropped
// lazily on lookup.
type SessionStore struct {
	mu       sync.Mutex
	bindings map[string]binding
	now      func() time.Time
}

var _ ports.SessionStore = (*SessionStore)(nil)

func NewSessionStore() *SessionStore {
	return &SessionStore{
		bindings: make(map[string]binding),
		now:      time.Now,
	}
}

func (s *SessionStore) Save(_ context.Context, handle string, userID int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bindings[handle] = binding{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *SessionStore) Lookup(_ context.Context, handle string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bindings[handle]
	if !ok {
		return 0, false, nil
	}
	if !s.now().Before(b.expiresAt) {
		delete(s.bindings, handle)
		return 0, false, nil
	}
	return b.userID, true, nil
}

func (s *SessionStore) Delete(_ context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.bindings, handle)
	return nil
}

// Len reports live and not-yet-evicted bindings.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bindings)
}

func (s *SessionStore) Ping(context.Context) error { return nil }
