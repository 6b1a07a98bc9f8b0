package models

import (
	"fmt"
	"strings"
)

// TicketStatus is the lifecycle state of a ticket.
// There is no enforced transition graph: any status can be set from any other.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusClosed     TicketStatus = "closed"
)

// Statuses lists every valid status in display order.
var Statuses = []TicketStatus{StatusOpen, StatusInProgress, StatusClosed}

// Valid reports whether s is one of the enumerated statuses.
func (s TicketStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// Label returns the badge text shown in ticket lists ("IN PROGRESS").
func (s TicketStatus) Label() string {
	return strings.ToUpper(strings.ReplaceAll(string(s), "_", " "))
}

// ParseStatus converts user input into a TicketStatus.
// It accepts the stored form ("in_progress") as well as the display form
// ("In Progress"), case-insensitively. An empty string means StatusOpen.
func ParseStatus(s string) (TicketStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")
	if normalized == "" {
		return StatusOpen, nil
	}
	status := TicketStatus(normalized)
	if !status.Valid() {
		return "", NewInvalidStatusError(s)
	}
	return status, nil
}

// Ticket represents a support ticket.
type Ticket struct {
	// ID is the unique identifier, derived from the creation time in
	// milliseconds since the Unix epoch.
	ID int64 `json:"id"`

	// Title is required and never blank for a stored ticket.
	Title string `json:"title"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// Status is always one of Statuses.
	Status TicketStatus `json:"status"`
}

// String implements fmt.Stringer for log lines and CLI output.
func (t Ticket) String() string {
	return fmt.Sprintf("#%d [%s] %s", t.ID, t.Status.Label(), t.Title)
}

// TicketPatch carries the mutable fields of an update.
// Nil fields are left unchanged.
type TicketPatch struct {
	Title       *string
	Description *string
	Status      *TicketStatus
}

// Empty reports whether the patch changes nothing.
func (p TicketPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// Apply returns a copy of t with the patch applied.
func (p TicketPatch) Apply(t Ticket) Ticket {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	return t
}

// ValidateTitle rejects blank titles.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewTitleRequiredError()
	}
	return nil
}
