package ports

import (
	"context"
	"time"
)

// SessionStore is the handle-to-user binding table behind the session
// manager. Implementations must drop bindings once ttl elapses.
type SessionStore interface {
	Save(ctx context.Context, handle string, userID int64, ttl time.Duration) error
	// Lookup reports ok=false for unknown or expired handles.
	Lookup(ctx context.Context, handle string) (userID int64, ok bool, err error)
	// Delete is idempotent.
	Delete(ctx context.Context, handle string) error
}
