package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/ticketapp/internal/middleware"
)

func (a *App) updateLanding(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "l":
		return a.navigate(middleware.RouteLogin, "")
	case "s":
		return a.navigate(middleware.RouteSignup, "")
	case "d":
		return a.navigate(middleware.RouteDashboard, "")
	case "t":
		return a.navigate(middleware.RouteTickets, "")
	case "q", "esc":
		return tea.Quit
	}
	return nil
}

func (a *App) viewLanding() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("TicketApp"))
	b.WriteString("\n")
	b.WriteString("Track, update and close support tickets in one place.\n\n")
	b.WriteString(a.flashView())
	if a.session != nil {
		b.WriteString(a.styles.Subtle.Render("Logged in as " + a.session.Email))
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("l login • s sign up • d dashboard • t tickets • q quit"))
	return b.String()
}
