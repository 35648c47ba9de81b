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
	userColumns = `id, first_name, last_name, email, username, password_hash, is_member, is_admin, created_at`

	insertUserSQL = `INSERT INTO users (first_name, last_name, email, username, password_hash, is_member, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	selectUserByIDSQL       = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	selectUserByEmailSQL    = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	selectUserByUsernameSQL = `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	selectUsersSQL          = `SELECT ` + userColumns + ` FROM users ORDER BY id`
	updateMembershipSQL     = `UPDATE users SET is_member = $1 WHERE id = $2`
)

// UserRepository implements ports.CredentialStore on PostgreSQL.
type UserRepository struct {
	db DBTX
}

var _ ports.CredentialStore = (*UserRepository)(nil)

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Username,
		&u.PasswordHash, &u.IsMember, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	out := *user
	err := r.db.QueryRowContext(ctx, insertUserSQL,
		user.FirstName, user.LastName, user.Email, user.Username,
		user.PasswordHash, user.IsMember, user.IsAdmin, user.CreatedAt,
	).Scan(&out.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.queryOne(ctx, selectUserByIDSQL, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.queryOne(ctx, selectUserByEmailSQL, email)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.queryOne(ctx, selectUserByUsernameSQL, username)
}

func (r *UserRepository) queryOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

// UpdateMembership is a single-row UPDATE, so concurrent calls cannot leave
// the flag half-written.
func (r *UserRepository) UpdateMembership(ctx context.Context, id int64, isMember bool) error {
	res, err := r.db.ExecContext(ctx, updateMembershipSQL, isMember, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
