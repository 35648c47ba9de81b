package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/clubhouse/board/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub stores
// ---------------------------------------------------------------------------

var errStoreDown = errors.New("store down")

type stubUserStore struct {
	users  map[int64]*domain.User
	nextID int64
	err    error // if set, every call returns it
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserStore) add(u domain.User) *domain.User {
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = &u
	return cloneUser(&u)
}

func (r *stubUserStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	return r.add(*user), nil
}

func (r *stubUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserStore) List(_ context.Context) ([]*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserStore) UpdateMembership(_ context.Context, id int64, isMember bool) error {
	if r.err != nil {
		return r.err
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsMember = isMember
	return nil
}

type stubMessageStore struct {
	users    *stubUserStore
	messages map[int64]*domain.Message
	nextID   int64
	err      error
}

func newStubMessageStore(users *stubUserStore) *stubMessageStore {
	return &stubMessageStore{users: users, messages: make(map[int64]*domain.Message)}
}

func (r *stubMessageStore) Create(_ context.Context, msg *domain.Message) (*domain.Message, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	clone := *msg
	clone.ID = r.nextID
	r.messages[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubMessageStore) authored(m *domain.Message) *domain.AuthoredMessage {
	am := &domain.AuthoredMessage{Message: *m}
	if u, ok := r.users.users[m.AuthorID]; ok {
		am.AuthorFirstName = u.FirstName
		am.AuthorLastName = u.LastName
		am.AuthorUsername = u.Username
	}
	return am
}

func (r *stubMessageStore) GetByID(_ context.Context, id int64) (*domain.AuthoredMessage, error) {
	if r.err != nil {
		return nil, r.err
	}
	m, ok := r.messages[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	return r.authored(m), nil
}

func (r *stubMessageStore) List(_ context.Context) ([]*domain.AuthoredMessage, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*domain.AuthoredMessage, 0, len(r.messages))
	for _, m := range r.messages {
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

func (r *stubMessageStore) Delete(_ context.Context, id int64) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.messages[id]; !ok {
		return domain.ErrMessageNotFound
	}
	delete(r.messages, id)
	return nil
}

type stubSessionStore struct {
	bindings map[string]int64
	ttls     map[string]time.Duration
	err      error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{bindings: make(map[string]int64), ttls: make(map[string]time.Duration)}
}

func (s *stubSessionStore) Save(_ context.Context, handle string, userID int64, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.bindings[handle] = userID
	s.ttls[handle] = ttl
	return nil
}

func (s *stubSessionStore) Lookup(_ context.Context, handle string) (int64, bool, error) {
	if s.err != nil {
		return 0, false, s.err
	}
	id, ok := s.bindings[handle]
	return id, ok, nil
}

func (s *stubSessionStore) Delete(_ context.Context, handle string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.bindings, handle)
	return nil
}
