package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhouse/board/internal/core/domain"
)

func newUser(email, username string) *domain.User {
	return &domain.User{FirstName: "F", LastName: "L", Email: email, Username: username, PasswordHash: "h"}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewDB())

	created, err := repo.Create(ctx, newUser("a@x.com", "ann"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	byEmail, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byName, err := repo.FindByUsername(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = repo.FindByEmail(ctx, "A@X.COM")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_Duplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewDB())

	_, err := repo.Create(ctx, newUser("a@x.com", "ann"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newUser("a@x.com", "other"))
	assert.ErrorIs(t, err, domain.ErrUserExists)
	_, err = repo.Create(ctx, newUser("b@x.com", "ann"))
	assert.ErrorIs(t, err, domain.ErrUserExists)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepository_ConcurrentCreateKeepsIdentitiesUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewDB())

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, newUser("same@x.com", "same"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		}
	}
	assert.Equal(t, 1, ok)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewDB())

	created, err := repo.Create(ctx, newUser("a@x.com", "ann"))
	require.NoError(t, err)
	created.IsAdmin = true

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsAdmin)
}

func TestUserRepository_UpdateMembership(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewDB())
	u, err := repo.Create(ctx, newUser("a@x.com", "ann"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.UpdateMembership(ctx, u.ID, true))
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsMember)

	assert.ErrorIs(t, repo.UpdateMembership(ctx, 99, true), domain.ErrUserNotFound)
}

func TestMessageRepository_ListJoinsAuthorNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	users := NewUserRepository(db)
	messages := NewMessageRepository(db)

	author, err := users.Create(ctx, &domain.User{FirstName: "Ann", LastName: "Lee", Email: "a@x.com", Username: "ann"})
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, ts := range []time.Time{base, base.Add(time.Hour), base} {
		_, err := messages.Create(ctx, &domain.Message{Title: fmt.Sprintf("m%d", i+1), Timestamp: ts, AuthorID: author.ID})
		require.NoError(t, err)
	}

	list, err := messages.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{2, 3, 1}, []int64{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, "Ann", list[0].AuthorFirstName)
	assert.Equal(t, "ann", list[0].AuthorUsername)
}

func TestMessageRepository_CreateRequiresAuthor(t *testing.T) {
	_, err := NewMessageRepository(NewDB()).Create(context.Background(), &domain.Message{Title: "t", AuthorID: 5})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestMessageRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	author, err := NewUserRepository(db).Create(ctx, newUser("a@x.com", "ann"))
	require.NoError(t, err)
	messages := NewMessageRepository(db)

	m, err := messages.Create(ctx, &domain.Message{Title: "t", Text: "x", AuthorID: author.ID})
	require.NoError(t, err)

	require.NoError(t, messages.Delete(ctx, m.ID))
	_, err = messages.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrMessageNotFound)
	assert.ErrorIs(t, messages.Delete(ctx, m.ID), domain.ErrMessageNotFound)
}

func TestSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "h", 7, time.Hour))

	id, ok, err := store.Lookup(ctx, "h")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	now = now.Add(time.Hour)
	_, ok, err = store.Lookup(ctx, "h")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestSessionStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	require.NoError(t, store.Save(ctx, "h", 1, time.Hour))
	require.NoError(t, store.Delete(ctx, "h"))
	require.NoError(t, store.Delete(ctx, "h"))

	_, ok, err := store.Lookup(ctx, "h")
	require.NoError(t, err)
	assert.False(t, ok)
}
