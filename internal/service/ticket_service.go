package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/ticketapp/internal/calculator"
	"github.com/mmynk/ticketapp/internal/metrics"
	"github.com/mmynk/ticketapp/internal/middleware"
	"github.com/mmynk/ticketapp/internal/models"
	"github.com/mmynk/ticketapp/internal/tickets"
)

// TicketService exposes the ticket store to logged-in users only.
type TicketService struct {
	tickets  *tickets.Store
	recorder metrics.Recorder
	logger   *slog.Logger
	wrap     middleware.Interceptor
}

// NewTicketService creates a ticket service. Every call goes through the
// session guard.
func NewTicketService(store *tickets.Store, sessions middleware.SessionReader, recorder metrics.Recorder, logger *slog.Logger) *TicketService {
	return &TicketService{
		tickets:  store,
		recorder: recorder,
		logger:   logger,
		wrap: middleware.Chain(
			middleware.OperationID(),
			middleware.Logging(logger),
			middleware.Metrics(recorder),
			middleware.RequireSession(sessions),
		),
	}
}

// List returns all tickets in insertion order.
func (s *TicketService) List(ctx context.Context) ([]models.Ticket, error) {
	var list []models.Ticket
	err := s.wrap("tickets.list", func(ctx context.Context) error {
		var err error
		list, err = s.tickets.List(ctx)
		if err != nil {
			return err
		}
		s.recorder.SetTicketCounts(calculator.Summarize(list))
		return nil
	})(ctx)
	return list, err
}

// Get returns one ticket.
func (s *TicketService) Get(ctx context.Context, id int64) (models.Ticket, error) {
	var ticket models.Ticket
	err := s.wrap("tickets.get", func(ctx context.Context) error {
		var err error
		ticket, err = s.tickets.Get(ctx, id)
		return err
	})(ctx)
	return ticket, err
}

// Create adds a ticket.
func (s *TicketService) Create(ctx context.Context, title, description string, status models.TicketStatus) (models.Ticket, error) {
	var ticket models.Ticket
	err := s.wrap("tickets.create", func(ctx context.Context) error {
		var err error
		ticket, err = s.tickets.Create(ctx, title, description, status)
		if err != nil {
			return err
		}
		s.logger.Info("Ticket created",
			"ticket_id", ticket.ID,
			"status", ticket.Status,
			"email", middleware.GetEmail(ctx),
		)
		s.refreshCounts(ctx)
		return nil
	})(ctx)
	return ticket, err
}

// Update changes the mutable fields of a ticket.
func (s *TicketService) Update(ctx context.Context, id int64, patch models.TicketPatch) (models.Ticket, error) {
	var ticket models.Ticket
	err := s.wrap("tickets.update", func(ctx context.Context) error {
		var err error
		ticket, err = s.tickets.Update(ctx, id, patch)
		if err != nil {
			return err
		}
		s.logger.Info("Ticket updated",
			"ticket_id", ticket.ID,
			"status", ticket.Status,
			"email", middleware.GetEmail(ctx),
		)
		s.refreshCounts(ctx)
		return nil
	})(ctx)
	return ticket, err
}

// Delete removes a ticket.
func (s *TicketService) Delete(ctx context.Context, id int64) error {
	return s.wrap("tickets.delete", func(ctx context.Context) error {
		if err := s.tickets.Delete(ctx, id); err != nil {
			return err
		}
		s.logger.Info("Ticket deleted", "ticket_id", id, "email", middleware.GetEmail(ctx))
		s.refreshCounts(ctx)
		return nil
	})(ctx)
}

// Search returns tickets whose title or description contains query.
func (s *TicketService) Search(ctx context.Context, query string) ([]models.Ticket, error) {
	var found []models.Ticket
	err := s.wrap("tickets.search", func(ctx context.Context) error {
		var err error
		found, err = s.tickets.Search(ctx, query)
		return err
	})(ctx)
	return found, err
}

// Filter returns tickets with the given status.
func (s *TicketService) Filter(ctx context.Context, status models.TicketStatus) ([]models.Ticket, error) {
	var found []models.Ticket
	err := s.wrap("tickets.filter", func(ctx context.Context) error {
		if !status.Valid() {
			return models.NewInvalidStatusError(string(status))
		}
		var err error
		found, err = s.tickets.Filter(ctx, status)
		return err
	})(ctx)
	return found, err
}

// Dashboard returns the ticket counts for the dashboard.
func (s *TicketService) Dashboard(ctx context.Context) (calculator.Summary, error) {
	var summary calculator.Summary
	err := s.wrap("tickets.dashboard", func(ctx context.Context) error {
		list, err := s.tickets.List(ctx)
		if err != nil {
			return err
		}
		summary = calculator.Summarize(list)
		s.recorder.SetTicketCounts(summary)
		return nil
	})(ctx)
	return summary, err
}

// refreshCounts updates the ticket gauges after a write. Failures only
// affect metrics, so they are logged and dropped.
func (s *TicketService) refreshCounts(ctx context.Context) {
	list, err := s.tickets.List(ctx)
	if err != nil {
		s.logger.Warn("Failed to refresh ticket counts", "error", err)
		return
	}
	s.recorder.SetTicketCounts(calculator.Summarize(list))
}
