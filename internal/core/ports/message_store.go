package ports

import (
	"context"

	"github.com/clubhouse/board/internal/core/domain"
)

// MessageStore persists messages with author attribution.
type MessageStore interface {
	Create(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	// GetByID returns domain.ErrMessageNotFound when the id is unknown.
	GetByID(ctx context.Context, id int64) (*domain.AuthoredMessage, error)
	// List returns every message joined with its author, newest first.
	List(ctx context.Context) ([]*domain.AuthoredMessage, error)
	// Delete returns domain.ErrMessageNotFound when nothing was removed.
	Delete(ctx context.Context, id int64) error
}
