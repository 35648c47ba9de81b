package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clubhouse/board/internal/core/domain"
	"github.com/clubhouse/board/internal/core/ports"
)

const (
	insertMessageSQL = `INSERT INTO messages (title, text, timestamp, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	authoredMessageSQL = `SELECT m.id, m.title, m.text, m.timestamp, m.author_id,
		u.first_name, u.last_name, u.username
		FROM messages m
		JOIN users u ON u.id = m.author_id`
	selectMessageByIDSQL = authoredMessageSQL + ` WHERE m.id = $1`
	selectMessagesSQL    = authoredMessageSQL + ` ORDER BY m.timestamp DESC, m.id DESC`
	deleteMessageSQL     = `DELETE FROM messages WHERE id = $1`
)

// MessageRepository implements ports.MessageStore on PostgreSQL.
type MessageRepository struct {
	db DBTX
}

var _ ports.MessageStore = (*MessageRepository)(nil)

func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{db: db}
}

func scanAuthored(row rowScanner) (*domain.AuthoredMessage, error) {
	m := &domain.AuthoredMessage{}
	err := row.Scan(&m.ID, &m.Title, &m.Text, &m.Timestamp, &m.AuthorID,
		&m.AuthorFirstName, &m.AuthorLastName, &m.AuthorUsername)
	if err != nil {
		return nil, err
	}
	m.Timestamp = m.Timestamp.UTC()
	return m, nil
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	out := *msg
	err := r.db.QueryRowContext(ctx, insertMessageSQL, msg.Title, msg.Text, msg.Timestamp, msg.AuthorID).Scan(&out.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &out, nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.AuthoredMessage, error) {
	m, err := scanAuthored(r.db.QueryRowContext(ctx, selectMessageByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *MessageRepository) List(ctx context.Context) ([]*domain.AuthoredMessage, error) {
	rows, err := r.db.QueryContext(ctx, selectMessagesSQL)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*domain.AuthoredMessage
	for rows.Next() {
		m, err := scanAuthored(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteMessageSQL, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}
