package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/clubhouse/board/internal/core/domain"
	"github.com/clubhouse/board/internal/core/policy"
	"github.com/clubhouse/board/internal/core/ports"
)

// MembershipService grants club membership and lists users for admins.
type MembershipService struct {
	users  ports.CredentialStore
	policy *policy.Policy
	log    zerolog.Logger
}

func NewMembershipService(users ports.CredentialStore, p *policy.Policy, log zerolog.Logger) *MembershipService {
	return &MembershipService{users: users, policy: p, log: log}
}

// JoinClub flips the actor to member when the passcode matches. The returned
// identity reflects the change.
func (s *MembershipService) JoinClub(ctx context.Context, actor *domain.Identity, passcode string) (*domain.Identity, error) {
	if d := s.policy.Decide(actor, policy.JoinClub, policy.Resource{Passcode: passcode}); !d.Allowed {
		return nil, d.Reason
	}

	if err := s.users.UpdateMembership(ctx, actor.ID, true); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, domain.NewInternalError("update membership", err)
	}

	s.log.Info().Int64("user_id", actor.ID).Msg("user joined the club")

	updated := *actor
	updated.IsMember = true
	return &updated, nil
}

// ListUsers returns every user's public fields. Admin only.
func (s *MembershipService) ListUsers(ctx context.Context, actor *domain.Identity) ([]*domain.Identity, error) {
	if d := s.policy.Decide(actor, policy.ListUsers, policy.Resource{}); !d.Allowed {
		return nil, d.Reason
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, domain.NewInternalError("list users", err)
	}

	out := make([]*domain.Identity, len(users))
	for i, u := range users {
		out[i] = u.Identity()
	}
	return out, nil
}
