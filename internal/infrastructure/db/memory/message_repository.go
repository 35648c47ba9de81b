package memory

import (
	"context"
	"sort"

	"github.com/clubhouse/board/internal/core/domain"
	"github.com/clubhouse/board/internal/core/ports"
)

// MessageRepository implements ports.MessageStore in memory.
type MessageRepository struct {
	db *DB
}

var _ ports.MessageStore = (*MessageRepository)(nil)

func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(_ context.Context, msg *domain.Message) (*domain.Message, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[msg.AuthorID]; !ok {
		return nil, domain.ErrUserNotFound
	}

	r.db.nextMessageID++
	stored := *msg
	stored.ID = r.db.nextMessageID
	r.db.messages[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *MessageRepository) GetByID(_ context.Context, id int64) (*domain.AuthoredMessage, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	m, ok := r.db.messages[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	return r.authored(m), nil
}

// List orders by timestamp descending, then id descending for equal stamps.
func (r *MessageRepository) List(_ context.Context) ([]*domain.AuthoredMessage, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*domain.AuthoredMessage, 0, len(r.db.messages))
	for _, m := range r.db.messages {
		out = append(out, r.authored(m))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *MessageRepository) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.messages[id]; !ok {
		return domain.ErrMessageNotFound
	}
	delete(r.db.messages, id)
	return nil
}

// authored must be called with the read lock held.
func (r *MessageRepository) authored(m *domain.Message) *domain.AuthoredMessage {
	am := &domain.AuthoredMessage{Message: *m}
	if u, ok := r.db.users[m.AuthorID]; ok {
		am.AuthorFirstName = u.FirstName
		am.AuthorLastName = u.LastName
		am.AuthorUsername = u.Username
	}
	return am
}
