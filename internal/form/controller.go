// Package form holds the transient draft behind the ticket form.
//
// A Controller edits one ticket at a time. It owns no tickets itself: Submit
// and Delete go through a TicketWriter and the draft is thrown away once the
// write succeeds.
package form

import (
	"context"

	"github.com/mmynk/ticketapp/internal/models"
)

// Messages shown after a successful write.
const (
	MsgCreated = "Ticket created successfully!"
	MsgUpdated = "Ticket updated successfully!"
	MsgDeleted = "Ticket deleted successfully!"
)

// TicketWriter is the subset of the ticket service the form needs.
type TicketWriter interface {
	Create(ctx context.Context, title, description string, status models.TicketStatus) (models.Ticket, error)
	Update(ctx context.Context, id int64, patch models.TicketPatch) (models.Ticket, error)
	Delete(ctx context.Context, id int64) error
}

// Controller is the ticket form state.
type Controller struct {
	Title       string
	Description string
	Status      models.TicketStatus

	// Error and Success hold the last user-visible outcome.
	Error   string
	Success string

	editID *int64
	writer TicketWriter
}

// NewController returns an empty form writing through w.
func NewController(w TicketWriter) *Controller {
	c := &Controller{writer: w}
	c.Reset()
	return c
}

// Reset clears the draft back to a new open ticket and drops messages.
func (c *Controller) Reset() {
	c.Title = ""
	c.Description = ""
	c.Status = models.StatusOpen
	c.editID = nil
	c.Error = ""
	c.Success = ""
}

// Edit loads t into the draft; the next Submit updates it.
func (c *Controller) Edit(t models.Ticket) {
	c.Title = t.Title
	c.Description = t.Description
	c.Status = t.Status
	id := t.ID
	c.editID = &id
	c.Error = ""
	c.Success = ""
}

// Editing reports whether Submit will update an existing ticket.
func (c *Controller) Editing() bool {
	return c.editID != nil
}

// EditID returns the ticket being edited, or 0.
func (c *Controller) EditID() int64 {
	if c.editID == nil {
		return 0
	}
	return *c.editID
}

// Validate checks the draft without writing.
func (c *Controller) Validate() error {
	if err := models.ValidateTitle(c.Title); err != nil {
		return err
	}
	if !c.Status.Valid() {
		return models.NewInvalidStatusError(string(c.Status))
	}
	return nil
}

// Submit creates or updates a ticket from the draft. On success the draft
// is reset and Success is set; on failure the draft is kept and Error is set.
func (c *Controller) Submit(ctx context.Context) (models.Ticket, error) {
	c.Error = ""
	c.Success = ""

	if err := c.Validate(); err != nil {
		c.Error = models.UserMessage(err)
		return models.Ticket{}, err
	}

	var (
		ticket models.Ticket
		err    error
		msg    string
	)
	if c.editID != nil {
		title, description, status := c.Title, c.Description, c.Status
		ticket, err = c.writer.Update(ctx, *c.editID, models.TicketPatch{
			Title:       &title,
			Description: &description,
			Status:      &status,
		})
		msg = MsgUpdated
	} else {
		ticket, err = c.writer.Create(ctx, c.Title, c.Description, c.Status)
		msg = MsgCreated
	}
	if err != nil {
		c.Error = models.UserMessage(err)
		return models.Ticket{}, err
	}

	c.Reset()
	c.Success = msg
	return ticket, nil
}

// Delete removes the ticket with id. If it was the one being edited the
// draft is reset.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	c.Error = ""
	c.Success = ""

	if err := c.writer.Delete(ctx, id); err != nil {
		c.Error = models.UserMessage(err)
		return err
	}

	if c.editID != nil && *c.editID == id {
		c.Reset()
	}
	c.Success = MsgDeleted
	return nil
}
