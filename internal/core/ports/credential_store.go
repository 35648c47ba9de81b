package ports

import (
	"context"

	"github.com/clubhouse/board/internal/core/domain"
)

// CredentialStore persists users and their password hashes. It applies no
// policy. Lookups return domain.ErrUserNotFound when no row matches.
type CredentialStore interface {
	// Create inserts the user and returns the stored row with its ID set.
	// Returns domain.ErrUserExists when the email or username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// UpdateMembership atomically sets is_member on one row.
	UpdateMembership(ctx context.Context, id int64, isMember bool) error
}
