package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clubhouse/board/internal/core/domain"
	"github.com/clubhouse/board/internal/core/ports"
)

// DefaultSessionTTL is how long a session lives without an explicit logout.
const DefaultSessionTTL = 24 * time.Hour

// SessionService binds identities to opaque handles and resolves them back on
// every request.
type SessionService struct {
	store     ports.SessionStore
	users     ports.CredentialStore
	ttl       time.Duration
	newHandle func() string
	log       zerolog.Logger
}

func NewSessionService(store ports.SessionStore, users ports.CredentialStore, ttl time.Duration, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{
		store:     store,
		users:     users,
		ttl:       ttl,
		newHandle: uuid.NewString,
		log:       log.With().Str("component", "session_manager").Logger(),
	}
}

// TTL is the lifetime given to new sessions.
func (s *SessionService) TTL() time.Duration { return s.ttl }

// Start allocates a fresh handle for a verified identity.
func (s *SessionService) Start(ctx context.Context, identity *domain.Identity) (string, error) {
	if !identity.IsAuthenticated() {
		return "", domain.ErrNotAuthenticated
	}

	handle := s.newHandle()
	if err := s.store.Save(ctx, handle, identity.ID, s.ttl); err != nil {
		return "", domain.NewInternalError("save session", err)
	}

	s.log.Debug().Int64("user_id", identity.ID).Msg("session started")
	return handle, nil
}

// Resolve maps a handle to the current user row. Missing, unknown and expired
// handles resolve to nil (anonymous).
func (s *SessionService) Resolve(ctx context.Context, handle string) (*domain.Identity, error) {
	if handle == "" {
		return nil, nil
	}

	userID, ok, err := s.store.Lookup(ctx, handle)
	if err != nil {
		return nil, domain.NewInternalError("lookup session", err)
	}
	if !ok {
		return nil, nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Int64("user_id", userID).Msg("session bound to missing user, ending it")
			if delErr := s.store.Delete(ctx, handle); delErr != nil {
				s.log.Warn().Err(delErr).Msg("failed to end orphaned session")
			}
			return nil, nil
		}
		return nil, domain.NewInternalError("get session user", err)
	}

	return user.Identity(), nil
}

// End removes the binding. Unknown handles are not an error.
func (s *SessionService) End(ctx context.Context, handle string) error {
	if handle == "" {
		return nil
	}
	if err := s.store.Delete(ctx, handle); err != nil {
		return domain.NewInternalError("delete session", err)
	}
	s.log.Debug().Msg("session ended")
	return nil
}
