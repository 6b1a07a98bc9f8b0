// Package tickets implements the ticket store kept under storage.TicketsKey.
//
// The collection is a JSON array in insertion order. Every mutation loads the
// array, changes one record and writes the whole array back; a failed
// validation or lookup never writes.
package tickets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/ticketapp/internal/models"
	"github.com/mmynk/ticketapp/internal/storage"
)

// Store is the ticket store.
type Store struct {
	store storage.Store
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to derive ticket IDs.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a ticket store over store.
func New(store storage.Store, opts ...Option) *Store {
	s := &Store{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all tickets in insertion order.
func (s *Store) List(ctx context.Context) ([]models.Ticket, error) {
	return s.load(ctx)
}

// Get returns the ticket with id.
func (s *Store) Get(ctx context.Context, id int64) (models.Ticket, error) {
	tickets, err := s.load(ctx)
	if err != nil {
		return models.Ticket{}, err
	}
	i := indexOf(tickets, id)
	if i < 0 {
		return models.Ticket{}, models.NewTicketNotFoundError(id)
	}
	return tickets[i], nil
}

// Create appends a new ticket. An empty status means open.
func (s *Store) Create(ctx context.Context, title, description string, status models.TicketStatus) (models.Ticket, error) {
	if err := models.ValidateTitle(title); err != nil {
		return models.Ticket{}, err
	}
	if status == "" {
		status = models.StatusOpen
	}
	if !status.Valid() {
		return models.Ticket{}, models.NewInvalidStatusError(string(status))
	}

	tickets, err := s.load(ctx)
	if err != nil {
		return models.Ticket{}, err
	}

	ticket := models.Ticket{
		ID:          nextID(tickets, s.now()),
		Title:       title,
		Description: description,
		Status:      status,
	}
	tickets = append(tickets, ticket)
	if err := s.save(ctx, tickets); err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

// Update applies patch to the ticket with id and returns the result.
func (s *Store) Update(ctx context.Context, id int64, patch models.TicketPatch) (models.Ticket, error) {
	if patch.Title != nil {
		if err := models.ValidateTitle(*patch.Title); err != nil {
			return models.Ticket{}, err
		}
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return models.Ticket{}, models.NewInvalidStatusError(string(*patch.Status))
	}

	tickets, err := s.load(ctx)
	if err != nil {
		return models.Ticket{}, err
	}
	i := indexOf(tickets, id)
	if i < 0 {
		return models.Ticket{}, models.NewTicketNotFoundError(id)
	}

	tickets[i] = patch.Apply(tickets[i])
	if err := s.save(ctx, tickets); err != nil {
		return models.Ticket{}, err
	}
	return tickets[i], nil
}

// Delete removes the ticket with id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	tickets, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(tickets, id)
	if i < 0 {
		return models.NewTicketNotFoundError(id)
	}

	tickets = append(tickets[:i], tickets[i+1:]...)
	return s.save(ctx, tickets)
}

// Search returns tickets whose title or description contains query,
// ignoring case. An empty query matches everything.
func (s *Store) Search(ctx context.Context, query string) ([]models.Ticket, error) {
	tickets, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return Match(tickets, query), nil
}

// Filter returns the tickets with the given status.
func (s *Store) Filter(ctx context.Context, status models.TicketStatus) ([]models.Ticket, error) {
	tickets, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Ticket
	for _, t := range tickets {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

// Match filters tickets in memory with the same rules as Search.
func Match(tickets []models.Ticket, query string) []models.Ticket {
	q := strings.ToLower(query)
	if q == "" {
		return tickets
	}
	var out []models.Ticket
	for _, t := range tickets {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) load(ctx context.Context) ([]models.Ticket, error) {
	tickets := []models.Ticket{}
	if _, err := storage.LoadJSON(ctx, s.store, storage.TicketsKey, &tickets); err != nil {
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}
	return tickets, nil
}

func (s *Store) save(ctx context.Context, tickets []models.Ticket) error {
	return storage.SaveJSON(ctx, s.store, storage.TicketsKey, tickets)
}

// nextID derives an ID from now in milliseconds, moving past the largest
// existing ID so two tickets created in the same millisecond never collide.
func nextID(tickets []models.Ticket, now time.Time) int64 {
	id := now.UnixMilli()
	for _, t := range tickets {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

func indexOf(tickets []models.Ticket, id int64) int {
	for i, t := range tickets {
		if t.ID == id {
			return i
		}
	}
	return -1
}
