package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhouse/board/internal/core/domain"
)

var (
	anonymous = (*domain.Identity)(nil)
	plainUser = &domain.Identity{ID: 1, FirstName: "Ann", LastName: "Lee", Username: "ann"}
	member    = &domain.Identity{ID: 2, Username: "mo", IsMember: true}
	admin     = &domain.Identity{ID: 3, Username: "root", IsAdmin: true}
)

func stored() *domain.AuthoredMessage {
	return &domain.AuthoredMessage{
		Message: domain.Message{
			ID:        7,
			Title:     "Hi",
			Text:      "hello",
			Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			AuthorID:  1,
		},
		AuthorFirstName: "Ann",
		AuthorLastName:  "Lee",
		AuthorUsername:  "ann",
	}
}

func TestDecide_ReadsAllowEveryone(t *testing.T) {
	p := New("SECRET123")

	for _, action := range []Action{ReadMessageList, ReadMessageDetail} {
		for _, actor := range []*domain.Identity{anonymous, plainUser, member, admin} {
			d := p.Decide(actor, action, Resource{})
			require.True(t, d.Allowed, "%s by %+v", action, actor)
			require.NotNil(t, d.Transform)
		}
	}
}

func TestDecide_VisibilityTransform(t *testing.T) {
	p := New("SECRET123")

	for _, actor := range []*domain.Identity{anonymous, plainUser, admin} {
		v := p.Decide(actor, ReadMessageList, Resource{}).Transform(stored())
		assert.Equal(t, domain.AnonymousAuthor, v.Author)
		assert.Empty(t, v.Username)
		assert.Equal(t, int64(7), v.ID)
		assert.Equal(t, "hello", v.Text)
	}

	v := p.Decide(member, ReadMessageDetail, Resource{}).Transform(stored())
	assert.Equal(t, "Ann Lee", v.Author)
	assert.Equal(t, "ann", v.Username)
}

func TestDecide_CreateMessage(t *testing.T) {
	p := New("SECRET123")

	d := p.Decide(anonymous, CreateMessage, Resource{})
	assert.False(t, d.Allowed)
	assert.ErrorIs(t, d.Reason, domain.ErrNotAuthenticated)

	assert.True(t, p.Decide(plainUser, CreateMessage, Resource{}).Allowed)
}

func TestDecide_AdminActions(t *testing.T) {
	p := New("SECRET123")

	for _, action := range []Action{DeleteMessage, ListUsers} {
		assert.ErrorIs(t, p.Decide(anonymous, action, Resource{}).Reason, domain.ErrNotAuthenticated)

		d := p.Decide(member, action, Resource{})
		assert.False(t, d.Allowed)
		assert.ErrorIs(t, d.Reason, domain.ErrForbidden)
		assert.NotErrorIs(t, d.Reason, domain.ErrValidation)

		assert.True(t, p.Decide(admin, action, Resource{}).Allowed)
	}
}

func TestDecide_JoinClub(t *testing.T) {
	p := New("SECRET123")

	assert.ErrorIs(t, p.Decide(anonymous, JoinClub, Resource{Passcode: "SECRET123"}).Reason, domain.ErrNotAuthenticated)

	d := p.Decide(plainUser, JoinClub, Resource{Passcode: "secret123"})
	assert.False(t, d.Allowed)
	assert.ErrorIs(t, d.Reason, domain.ErrIncorrectPasscode)
	assert.ErrorIs(t, d.Reason, domain.ErrForbidden)

	assert.True(t, p.Decide(plainUser, JoinClub, Resource{Passcode: "SECRET123"}).Allowed)
}

func TestDecide_EmptyPasscodeNeverMatches(t *testing.T) {
	p := New("")

	d := p.Decide(plainUser, JoinClub, Resource{Passcode: ""})
	assert.False(t, d.Allowed)
	assert.ErrorIs(t, d.Reason, domain.ErrIncorrectPasscode)
}

func TestDecide_UnknownActionIsForbidden(t *testing.T) {
	d := New("SECRET123").Decide(admin, Action("rename-club"), Resource{})
	assert.False(t, d.Allowed)
	assert.ErrorIs(t, d.Reason, domain.ErrForbidden)
}
