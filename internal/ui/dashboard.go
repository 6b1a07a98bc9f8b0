package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmynk/ticketapp/internal/calculator"
	"github.com/mmynk/ticketapp/internal/middleware"
	"github.com/mmynk/ticketapp/internal/models"
	"github.com/mmynk/ticketapp/internal/service"
)

type dashboardScreen struct {
	summary calculator.Summary
	err     string
}

func (d *dashboardScreen) load(ctx context.Context, tickets *service.TicketService) {
	d.err = ""
	summary, err := tickets.Dashboard(ctx)
	if err != nil {
		d.err = models.UserMessage(err)
		return
	}
	d.summary = summary
}

func (a *App) updateDashboard(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "t", "enter":
		return a.navigate(middleware.RouteTickets, "")
	case "r":
		a.flash = ""
		a.dashboard.load(a.ctx, a.tickets)
	case "o":
		if err := a.auth.Logout(a.ctx); err != nil {
			a.dashboard.err = models.UserMessage(err)
			return nil
		}
		return a.navigate(middleware.RouteLogin, "")
	case "esc":
		return a.navigate(middleware.RouteLanding, "")
	case "q":
		return tea.Quit
	}
	return nil
}

func (a *App) viewDashboard() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Dashboard"))
	b.WriteString("\n")
	if a.session != nil {
		b.WriteString(a.styles.Subtle.Render("Logged in as " + a.session.Email))
		b.WriteString("\n\n")
	}
	b.WriteString(a.flashView())
	if a.dashboard.err != "" {
		b.WriteString(a.styles.Error.Render(a.dashboard.err))
		b.WriteString("\n\n")
	}

	s := a.dashboard.summary
	card := func(title string, n int) string {
		return a.styles.Card.Render(fmt.Sprintf("%s\n%d", title, n))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Tickets", s.Total),
		card("Open Tickets", s.Open),
		card("In Progress", s.InProgress),
		card("Resolved Tickets", s.Closed),
	))
	b.WriteString("\n")
	b.WriteString(a.styles.Subtle.Render(fmt.Sprintf("%.0f%% resolved", s.ResolvedRatio()*100)))
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("t manage tickets • r refresh • o logout • esc home • q quit"))
	return b.String()
}
