package ports

import (
	"context"

	"github.com/clubhouse/board/internal/core/domain"
)

// RegisterInput carries the sign-up form. RequestedAdmin is taken verbatim.
type RegisterInput struct {
	FirstName       string `validate:"required"`
	LastName        string `validate:"required"`
	Email           string `validate:"required"`
	Username        string `validate:"required"`
	Password        string `validate:"required"`
	ConfirmPassword string
	RequestedAdmin  bool
}

// Authenticator registers users and verifies credentials.
type Authenticator interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Identity, error)
	Verify(ctx context.Context, email, secret string) (*domain.Identity, error)
}

// SessionManager binds verified identities to opaque handles.
type SessionManager interface {
	Start(ctx context.Context, identity *domain.Identity) (string, error)
	// Resolve returns a nil identity for anonymous visitors; the error is
	// reserved for store faults.
	Resolve(ctx context.Context, handle string) (*domain.Identity, error)
	End(ctx context.Context, handle string) error
}

// MembershipService covers role changes and the admin user listing.
type MembershipService interface {
	JoinClub(ctx context.Context, actor *domain.Identity, passcode string) (*domain.Identity, error)
	ListUsers(ctx context.Context, actor *domain.Identity) ([]*domain.Identity, error)
}
