// Package memory provides mutex-guarded in-process stores. They back the
// "memory" drivers used in development and tests and lose all state on exit.
package memory

import (
	"context"
	"sync"

	"github.com/clubhouse/board/internal/core/domain"
)

// DB is the shared table space for the user and message repositories, so
// message listings can join author rows consistently.
type DB struct {
	mu            sync.RWMutex
	users         map[int64]*domain.User
	messages      map[int64]*domain.Message
	nextUserID    int64
	nextMessageID int64
}

func NewDB() *DB {
	return &DB{
		users:    make(map[int64]*domain.User),
		messages: make(map[int64]*domain.Message),
	}
}

// Ping always succeeds; it lets the readiness probe treat every driver alike.
func (db *DB) Ping(context.Context) error { return nil }

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}
