package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clubhouse/board/internal/core/domain"
)

func newSessionFixture(t *testing.T) (*SessionService, *stubSessionStore, *stubUserStore, *domain.User) {
	t.Helper()
	users := newStubUserStore()
	u := users.add(domain.User{FirstName: "Ann", LastName: "Lee", Email: "a@x.com", Username: "ann", PasswordHash: "h"})
	store := newStubSessionStore()
	return NewSessionService(store, users, time.Hour, zerolog.Nop()), store, users, u
}

func TestSessionService_StartResolveEnd(t *testing.T) {
	svc, store, _, u := newSessionFixture(t)
	ctx := context.Background()

	handle, err := svc.Start(ctx, u.Identity())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if handle == "" {
		t.Fatalf("expected a handle")
	}
	if store.ttls[handle] != time.Hour {
		t.Fatalf("expected ttl 1h, got %v", store.ttls[handle])
	}

	identity, err := svc.Resolve(ctx, handle)
	if err != nil || identity == nil || identity.ID != u.ID {
		t.Fatalf("Resolve: %+v %v", identity, err)
	}

	if err := svc.End(ctx, handle); err != nil {
		t.Fatalf("End: %v", err)
	}
	identity, err = svc.Resolve(ctx, handle)
	if err != nil || identity != nil {
		t.Fatalf("expected anonymous after End, got %+v %v", identity, err)
	}

	if err := svc.End(ctx, handle); err != nil {
		t.Fatalf("End must be idempotent: %v", err)
	}
}

func TestSessionService_HandlesAreUnique(t *testing.T) {
	svc, _, _, u := newSessionFixture(t)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		h, err := svc.Start(context.Background(), u.Identity())
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
		if seen[h] {
			t.Fatalf("handle reused: %s", h)
		}
		seen[h] = true
	}
}

func TestSessionService_StartRejectsAnonymous(t *testing.T) {
	svc, _, _, _ := newSessionFixture(t)

	if _, err := svc.Start(context.Background(), nil); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestSessionService_ResolveReflectsRoleChanges(t *testing.T) {
	svc, _, users, u := newSessionFixture(t)
	ctx := context.Background()

	handle, _ := svc.Start(ctx, u.Identity())
	if err := users.UpdateMembership(ctx, u.ID, true); err != nil {
		t.Fatalf("UpdateMembership: %v", err)
	}

	identity, err := svc.Resolve(ctx, handle)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !identity.IsMember {
		t.Fatalf("expected membership to be visible without re-login")
	}
}

func TestSessionService_ResolveUnknownAndEmpty(t *testing.T) {
	svc, _, _, _ := newSessionFixture(t)

	for _, h := range []string{"", "never-issued"} {
		identity, err := svc.Resolve(context.Background(), h)
		if err != nil || identity != nil {
			t.Fatalf("Resolve(%q) = %+v, %v; want anonymous", h, identity, err)
		}
	}
}

func TestSessionService_ResolveEndsOrphanedBinding(t *testing.T) {
	svc, store, users, u := newSessionFixture(t)
	ctx := context.Background()

	handle, _ := svc.Start(ctx, u.Identity())
	delete(users.users, u.ID)

	identity, err := svc.Resolve(ctx, handle)
	if err != nil || identity != nil {
		t.Fatalf("expected anonymous, got %+v %v", identity, err)
	}
	if _, ok := store.bindings[handle]; ok {
		t.Fatalf("orphaned binding must be removed")
	}
}

func TestSessionService_StoreFaults(t *testing.T) {
	svc, store, _, u := newSessionFixture(t)
	store.err = errStoreDown
	ctx := context.Background()

	if _, err := svc.Start(ctx, u.Identity()); !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("Start: expected internal error, got %v", err)
	}
	if _, err := svc.Resolve(ctx, "h"); !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("Resolve: expected internal error, got %v", err)
	}
	if err := svc.End(ctx, "h"); !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("End: expected internal error, got %v", err)
	}
}

func TestNewSessionService_DefaultTTL(t *testing.T) {
	svc := NewSessionService(newStubSessionStore(), newStubUserStore(), 0, zerolog.Nop())
	if svc.TTL() != DefaultSessionTTL {
		t.Fatalf("expected default ttl, got %v", svc.TTL())
	}
}
