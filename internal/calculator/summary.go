// Package calculator derives the dashboard figures from a ticket list.
package calculator

import "github.com/mmynk/ticketapp/internal/models"

// Summary holds the ticket counts shown on the dashboard.
type Summary struct {
	Total      int
	Open       int
	InProgress int
	// Closed is shown as "Resolved" on the dashboard.
	Closed int
}

// Summarize counts tickets per status.
// Tickets with an unknown status only count towards Total.
func Summarize(tickets []models.Ticket) Summary {
	s := Summary{Total: len(tickets)}
	for _, t := range tickets {
		switch t.Status {
		case models.StatusOpen:
			s.Open++
		case models.StatusInProgress:
			s.InProgress++
		case models.StatusClosed:
			s.Closed++
		}
	}
	return s
}

// ResolvedRatio is the share of closed tickets, 0 for an empty list.
func (s Summary) ResolvedRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Closed) / float64(s.Total)
}
