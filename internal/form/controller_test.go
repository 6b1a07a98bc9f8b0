package form

import (
	"context"
	"errors"
	"testing"

	"github.com/mmynk/ticketapp/internal/models"
	"github.com/mmynk/ticketapp/internal/storage/memory"
	"github.com/mmynk/ticketapp/internal/tickets"
)

func newTestController(t *testing.T) (*Controller, *tickets.Store) {
	t.Helper()
	store := tickets.New(memory.New())
	return NewController(store), store
}

func TestSubmitCreates(t *testing.T) {
	ctx := context.Background()
	c, store := newTestController(t)

	c.Title = "Fix bug"
	c.Description = "Crash on save"
	ticket, err := c.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if ticket.Status != models.StatusOpen {
		t.Errorf("status = %s, want open", ticket.Status)
	}
	if c.Success != MsgCreated {
		t.Errorf("Success = %q", c.Success)
	}
	if c.Title != "" || c.Editing() {
		t.Error("expected draft to be reset after submit")
	}

	list, _ := store.List(ctx)
	if len(list) != 1 || list[0].Description != "Crash on save" {
		t.Errorf("unexpected list %+v", list)
	}
}

func TestSubmitEmptyTitleKeepsDraft(t *testing.T) {
	ctx := context.Background()
	c, store := newTestController(t)

	c.Title = "  "
	c.Description = "keep me"
	_, err := c.Submit(ctx)
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if c.Error != "Title is required." {
		t.Errorf("Error = %q", c.Error)
	}
	if c.Description != "keep me" {
		t.Error("draft should survive a failed submit")
	}
	if list, _ := store.List(ctx); len(list) != 0 {
		t.Errorf("expected no tickets, got %d", len(list))
	}
}

func TestSubmitInvalidStatus(t *testing.T) {
	c, _ := newTestController(t)
	c.Title = "Fix bug"
	c.Status = models.TicketStatus("blocked")
	if _, err := c.Submit(context.Background()); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestEditThenSubmitUpdates(t *testing.T) {
	ctx := context.Background()
	c, store := newTestController(t)
	created, _ := store.Create(ctx, "Fix bug", "", models.StatusOpen)

	c.Edit(created)
	if !c.Editing() || c.EditID() != created.ID {
		t.Fatalf("expected to be editing %d", created.ID)
	}
	c.Status = models.StatusInProgress
	c.Description = "Investigating"

	if _, err := c.Submit(ctx); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if c.Success != MsgUpdated {
		t.Errorf("Success = %q", c.Success)
	}

	got, _ := store.Get(ctx, created.ID)
	if got.Status != models.StatusInProgress || got.Description != "Investigating" {
		t.Errorf("update not applied: %+v", got)
	}
	if list, _ := store.List(ctx); len(list) != 1 {
		t.Errorf("update must not append, got %d tickets", len(list))
	}
}

func TestSubmitUpdateOfDeletedTicket(t *testing.T) {
	ctx := context.Background()
	c, store := newTestController(t)
	created, _ := store.Create(ctx, "Fix bug", "", models.StatusOpen)

	c.Edit(created)
	store.Delete(ctx, created.ID)

	_, err := c.Submit(ctx)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if !c.Editing() {
		t.Error("draft should be kept after a failed update")
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	c, store := newTestController(t)
	created, _ := store.Create(ctx, "Fix bug", "", models.StatusOpen)

	c.Edit(created)
	if err := c.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if c.Editing() {
		t.Error("deleting the edited ticket should reset the draft")
	}
	if c.Success != MsgDeleted {
		t.Errorf("Success = %q", c.Success)
	}

	if err := c.Delete(ctx, created.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("second delete error = %v", err)
	}
	if c.Error == "" {
		t.Error("expected Error to be set")
	}
}
