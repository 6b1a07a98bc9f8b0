// Package ui is the interactive terminal front-end: the landing, login,
// signup, dashboard and ticket management screens.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#2563EB")
	colorError   = lipgloss.Color("#DC2626")
	colorSuccess = lipgloss.Color("#16A34A")
	colorMuted   = lipgloss.Color("#6B7280")
	colorAmber   = lipgloss.Color("#B45309")
)

// Styles holds the lipgloss styles used by every screen.
type Styles struct {
	Title    lipgloss.Style
	Subtle   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Focused  lipgloss.Style
	Selected lipgloss.Style
	Card     lipgloss.Style
	Help     lipgloss.Style
	Status   map[string]lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1),
		Subtle:   lipgloss.NewStyle().Foreground(colorMuted),
		Error:    lipgloss.NewStyle().Foreground(colorError),
		Success:  lipgloss.NewStyle().Foreground(colorSuccess),
		Focused:  lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		Selected: lipgloss.NewStyle().Reverse(true),
		Card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2).MarginRight(1),
		Help:     lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
		Status: map[string]lipgloss.Style{
			"open":        lipgloss.NewStyle().Foreground(colorSuccess),
			"in_progress": lipgloss.NewStyle().Foreground(colorAmber),
			"closed":      lipgloss.NewStyle().Foreground(colorMuted),
		},
	}
}
