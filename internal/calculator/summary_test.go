package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/ticketapp/internal/models"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name      string
		tickets   []models.Ticket
		want      Summary
		wantRatio float64
	}{
		{
			name:      "empty list",
			tickets:   nil,
			want:      Summary{},
			wantRatio: 0,
		},
		{
			name: "mixed statuses",
			tickets: []models.Ticket{
				{ID: 1, Title: "A", Status: models.StatusOpen},
				{ID: 2, Title: "B", Status: models.StatusOpen},
				{ID: 3, Title: "C", Status: models.StatusInProgress},
				{ID: 4, Title: "D", Status: models.StatusClosed},
			},
			want:      Summary{Total: 4, Open: 2, InProgress: 1, Closed: 1},
			wantRatio: 0.25,
		},
		{
			name: "unknown status only counts in total",
			tickets: []models.Ticket{
				{ID: 1, Title: "A", Status: models.TicketStatus("archived")},
				{ID: 2, Title: "B", Status: models.StatusClosed},
			},
			want:      Summary{Total: 2, Closed: 1},
			wantRatio: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.tickets)
			if got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
			if math.Abs(got.ResolvedRatio()-tt.wantRatio) > 0.0001 {
				t.Errorf("ResolvedRatio() = %v, want %v", got.ResolvedRatio(), tt.wantRatio)
			}
		})
	}
}
