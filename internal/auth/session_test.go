package auth

import (
	"context"
	"testing"

	"github.com/mmynk/ticketapp/internal/storage"
	"github.com/mmynk/ticketapp/internal/storage/memory"
)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	sessions := NewSessionStore(store)

	if s, err := sessions.Current(ctx); err != nil || s != nil {
		t.Fatalf("expected no session initially, got %+v, %v", s, err)
	}

	if err := sessions.Start(ctx, "a@x.com"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	raw, _, _ := store.GetItem(ctx, storage.SessionKey)
	if raw != `{"email":"a@x.com"}` {
		t.Errorf("stored session = %s", raw)
	}

	// Starting again replaces the singleton.
	sessions.Start(ctx, "b@x.com")
	s, err := sessions.Current(ctx)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if s == nil || s.Email != "b@x.com" {
		t.Errorf("expected b@x.com, got %+v", s)
	}

	if err := sessions.End(ctx); err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if s, _ := sessions.Current(ctx); s != nil {
		t.Errorf("expected no session after End, got %+v", s)
	}
	if err := sessions.End(ctx); err != nil {
		t.Errorf("second End failed: %v", err)
	}
}
