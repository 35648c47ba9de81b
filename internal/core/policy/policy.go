// Package policy decides whether an actor may perform a board action and how
// messages are shaped for that actor. It owns no data and performs no I/O.
package policy

import (
	"crypto/subtle"

	"github.com/clubhouse/board/internal/core/domain"
)

// Action names a gated operation.
type Action string

const (
	ReadMessageList   Action = "read-message-list"
	ReadMessageDetail Action = "read-message-detail"
	CreateMessage     Action = "create-message"
	DeleteMessage     Action = "delete-message"
	JoinClub          Action = "join-club"
	ListUsers         Action = "list-users"
)

// Resource carries action-specific context. Only join-club uses it today.
type Resource struct {
	Passcode string
}

// Transform shapes a stored message for the deciding actor.
type Transform func(*domain.AuthoredMessage) domain.MessageView

// Decision is the outcome of Decide. Reason is domain.ErrNotAuthenticated
// or a domain.ErrForbidden variant when Allowed is false.
type Decision struct {
	Allowed   bool
	Reason    error
	Transform Transform
}

// Policy holds the configured club passcode.
type Policy struct {
	passcode []byte
}

func New(passcode string) *Policy {
	return &Policy{passcode: []byte(passcode)}
}

// Decide evaluates action for actor. A nil actor is anonymous.
func (p *Policy) Decide(actor *domain.Identity, action Action, res Resource) Decision {
	switch action {
	case ReadMessageList, ReadMessageDetail:
		return allow(visibilityFor(actor))

	case CreateMessage:
		if !actor.IsAuthenticated() {
			return deny(domain.ErrNotAuthenticated)
		}
		return allow(nil)

	case DeleteMessage, ListUsers:
		if !actor.IsAuthenticated() {
			return deny(domain.ErrNotAuthenticated)
		}
		if !actor.IsAdmin {
			return deny(domain.ErrForbidden)
		}
		return allow(nil)

	case JoinClub:
		if !actor.IsAuthenticated() {
			return deny(domain.ErrNotAuthenticated)
		}
		if !p.passcodeMatches(res.Passcode) {
			return deny(domain.ErrIncorrectPasscode)
		}
		return allow(nil)
	}

	return deny(domain.ErrForbidden)
}

func (p *Policy) passcodeMatches(supplied string) bool {
	if len(p.passcode) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(p.passcode, []byte(supplied)) == 1
}

func allow(t Transform) Decision { return Decision{Allowed: true, Transform: t} }

func deny(reason error) Decision { return Decision{Reason: reason} }

// visibilityFor attaches author details only for authenticated members.
func visibilityFor(actor *domain.Identity) Transform {
	if actor.IsAuthenticated() && actor.IsMember {
		return attributed
	}
	return anonymized
}

func attributed(m *domain.AuthoredMessage) domain.MessageView {
	v := baseView(m)
	v.Author = m.AuthorFirstName + " " + m.AuthorLastName
	v.Username = m.AuthorUsername
	return v
}

func anonymized(m *domain.AuthoredMessage) domain.MessageView {
	v := baseView(m)
	v.Author = domain.AnonymousAuthor
	return v
}

func baseView(m *domain.AuthoredMessage) domain.MessageView {
	return domain.MessageView{
		ID:        m.ID,
		Title:     m.Title,
		Text:      m.Text,
		Timestamp: m.Timestamp,
	}
}
