package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/clubhouse/board/internal/core/domain"
	"github.com/clubhouse/board/internal/core/policy"
)

const testPasscode = "SECRET123"

func TestMembershipService_JoinClub(t *testing.T) {
	users := newStubUserStore()
	u := users.add(domain.User{Username: "ann"})
	svc := NewMembershipService(users, policy.New(testPasscode), zerolog.Nop())

	identity, err := svc.JoinClub(context.Background(), u.Identity(), testPasscode)
	if err != nil {
		t.Fatalf("JoinClub: %v", err)
	}
	if !identity.IsMember {
		t.Fatalf("returned identity must reflect membership")
	}
	if !users.users[u.ID].IsMember {
		t.Fatalf("membership must be persisted")
	}
}

func TestMembershipService_JoinClub_Denials(t *testing.T) {
	users := newStubUserStore()
	u := users.add(domain.User{Username: "ann"})
	svc := NewMembershipService(users, policy.New(testPasscode), zerolog.Nop())

	if _, err := svc.JoinClub(context.Background(), nil, testPasscode); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("anonymous: expected ErrNotAuthenticated, got %v", err)
	}

	_, err := svc.JoinClub(context.Background(), u.Identity(), "wrong")
	if !errors.Is(err, domain.ErrIncorrectPasscode) || !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("wrong passcode: expected ErrIncorrectPasscode, got %v", err)
	}
	if errors.Is(err, domain.ErrValidation) {
		t.Fatalf("a denial must not be a validation failure")
	}
	if users.users[u.ID].IsMember {
		t.Fatalf("membership must not change on denial")
	}
}

func TestMembershipService_JoinClub_DeletedUser(t *testing.T) {
	users := newStubUserStore()
	svc := NewMembershipService(users, policy.New(testPasscode), zerolog.Nop())

	ghost := &domain.Identity{ID: 99}
	if _, err := svc.JoinClub(context.Background(), ghost, testPasscode); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestMembershipService_JoinClub_StoreFault(t *testing.T) {
	users := newStubUserStore()
	u := users.add(domain.User{Username: "ann"})
	users.err = errStoreDown
	svc := NewMembershipService(users, policy.New(testPasscode), zerolog.Nop())

	if _, err := svc.JoinClub(context.Background(), u.Identity(), testPasscode); !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestMembershipService_ListUsers(t *testing.T) {
	users := newStubUserStore()
	admin := users.add(domain.User{Username: "root", IsAdmin: true, PasswordHash: "h"})
	plain := users.add(domain.User{Username: "ann", PasswordHash: "h"})
	svc := NewMembershipService(users, policy.New(testPasscode), zerolog.Nop())

	list, err := svc.ListUsers(context.Background(), admin.Identity())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(list) != 2 || list[0].ID != admin.ID || list[1].ID != plain.ID {
		t.Fatalf("unexpected list: %+v", list)
	}

	if _, err := svc.ListUsers(context.Background(), plain.Identity()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-admin: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.ListUsers(context.Background(), nil); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("anonymous: expected ErrNotAuthenticated, got %v", err)
	}
}
