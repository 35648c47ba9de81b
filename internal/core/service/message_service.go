package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/clubhouse/board/internal/core/domain"
	"github.com/clubhouse/board/internal/core/policy"
	"github.com/clubhouse/board/internal/core/ports"
)

// MessageService runs message use cases behind the authorization policy.
type MessageService struct {
	repo   ports.MessageStore
	policy *policy.Policy
	logger zerolog.Logger
}

func NewMessageService(repo ports.MessageStore, p *policy.Policy, logger zerolog.Logger) *MessageService {
	return &MessageService{repo: repo, policy: p, logger: logger}
}

// List returns all messages, newest first, shaped for actor.
func (s *MessageService) List(ctx context.Context, actor *domain.Identity) ([]domain.MessageView, error) {
	d := s.policy.Decide(actor, policy.ReadMessageList, policy.Resource{})
	if !d.Allowed {
		return nil, d.Reason
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, domain.NewInternalError("list messages", err)
	}

	views := make([]domain.MessageView, len(rows))
	for i, m := range rows {
		views[i] = d.Transform(m)
	}
	return views, nil
}

// Get returns one message shaped for actor.
func (s *MessageService) Get(ctx context.Context, actor *domain.Identity, id int64) (*domain.MessageView, error) {
	d := s.policy.Decide(actor, policy.ReadMessageDetail, policy.Resource{})
	if !d.Allowed {
		return nil, d.Reason
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, domain.NewInternalError("get message", err)
	}

	view := d.Transform(m)
	return &view, nil
}

// Create stores a new message authored by actor.
func (s *MessageService) Create(ctx context.Context, actor *domain.Identity, in ports.CreateMessageInput) (*domain.Message, error) {
	if d := s.policy.Decide(actor, policy.CreateMessage, policy.Resource{}); !d.Allowed {
		return nil, d.Reason
	}

	if in.Title == "" || in.Text == "" {
		return nil, domain.NewValidationError("title", "title and text are required")
	}

	created, err := s.repo.Create(ctx, &domain.Message{
		Title:     in.Title,
		Text:      in.Text,
		Timestamp: time.Now().UTC(),
		AuthorID:  actor.ID,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("author_id", actor.ID).Msg("failed to create message")
		return nil, domain.NewInternalError("create message", err)
	}

	s.logger.Info().Int64("message_id", created.ID).Int64("author_id", actor.ID).Msg("message created")
	return created, nil
}

// Delete removes a message. Admin only.
func (s *MessageService) Delete(ctx context.Context, actor *domain.Identity, id int64) error {
	if d := s.policy.Decide(actor, policy.DeleteMessage, policy.Resource{}); !d.Allowed {
		return d.Reason
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrMessageNotFound
		}
		return domain.NewInternalError("delete message", err)
	}

	s.logger.Info().Int64("message_id", id).Int64("admin_id", actor.ID).Msg("message deleted")
	return nil
}
