package ports

import (
	"context"

	"github.com/clubhouse/board/internal/core/domain"
)

// CreateMessageInput is the body of a new post.
type CreateMessageInput struct {
	Title string
	Text  string
}

// MessageService gates every message operation through the authorization
// policy. A nil actor is anonymous.
type MessageService interface {
	List(ctx context.Context, actor *domain.Identity) ([]domain.MessageView, error)
	Get(ctx context.Context, actor *domain.Identity, id int64) (*domain.MessageView, error)
	Create(ctx context.Context, actor *domain.Identity, in CreateMessageInput) (*domain.Message, error)
	Delete(ctx context.Context, actor *domain.Identity, id int64) error
}
