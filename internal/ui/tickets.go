package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/ticketapp/internal/form"
	"github.com/mmynk/ticketapp/internal/middleware"
	"github.com/mmynk/ticketapp/internal/models"
	"github.com/mmynk/ticketapp/internal/service"
	"github.com/mmynk/ticketapp/internal/tickets"
)

// ticketFocus is the part of the ticket screen receiving keys.
type ticketFocus int

const (
	focusTitle ticketFocus = iota
	focusDescription
	focusStatus
	focusList
	focusSearch
	focusCount
)

type ticketScreen struct {
	form        *form.Controller
	service     *service.TicketService
	title       textinput.Model
	description textinput.Model
	search      textinput.Model

	all     []models.Ticket
	visible []models.Ticket
	cursor  int
	focus   ticketFocus
	// confirmID is the ticket awaiting delete confirmation, nil when none.
	confirmID *int64
	// loadErr is a failure to read the list, separate from form messages.
	loadErr string
}

func newTicketScreen(svc *service.TicketService) ticketScreen {
	search := newInput("Search title or description", false)
	return ticketScreen{
		form:        form.NewController(svc),
		service:     svc,
		title:       newInput("Title", false),
		description: newInput("Description (optional)", false),
		search:      search,
	}
}

// enter resets the form and reloads the list.
func (t *ticketScreen) enter(ctx context.Context) {
	t.form.Reset()
	t.title.Reset()
	t.description.Reset()
	t.search.Reset()
	t.focus = focusTitle
	t.confirmID = nil
	t.reload(ctx)
}

func (t *ticketScreen) reload(ctx context.Context) {
	t.loadErr = ""
	list, err := t.service.List(ctx)
	if err != nil {
		t.loadErr = models.UserMessage(err)
		list = nil
	}
	t.all = list
	t.applySearch()
}

func (t *ticketScreen) applySearch() {
	t.visible = tickets.Match(t.all, t.search.Value())
	if t.cursor >= len(t.visible) {
		t.cursor = len(t.visible) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

func (t *ticketScreen) selected() (models.Ticket, bool) {
	if len(t.visible) == 0 {
		return models.Ticket{}, false
	}
	return t.visible[t.cursor], true
}

func (t *ticketScreen) focusCurrent() tea.Cmd {
	t.title.Blur()
	t.description.Blur()
	t.search.Blur()
	switch t.focus {
	case focusTitle:
		return t.title.Focus()
	case focusDescription:
		return t.description.Focus()
	case focusSearch:
		return t.search.Focus()
	}
	return nil
}

func (t *ticketScreen) moveFocus(delta int) tea.Cmd {
	t.focus = (t.focus + ticketFocus(delta) + focusCount) % focusCount
	return t.focusCurrent()
}

// syncDraft copies the inputs into the form controller.
func (t *ticketScreen) syncDraft() {
	t.form.Title = t.title.Value()
	t.form.Description = t.description.Value()
}

// loadDraft copies the form controller into the inputs.
func (t *ticketScreen) loadDraft() {
	t.title.SetValue(t.form.Title)
	t.description.SetValue(t.form.Description)
}

func (t *ticketScreen) cycleStatus(delta int) {
	n := len(models.Statuses)
	for i, s := range models.Statuses {
		if s == t.form.Status {
			t.form.Status = models.Statuses[(i+delta+n)%n]
			return
		}
	}
	t.form.Status = models.StatusOpen
}

func (t *ticketScreen) submit(ctx context.Context) {
	t.syncDraft()
	if _, err := t.form.Submit(ctx); err != nil {
		return
	}
	t.loadDraft()
	t.reload(ctx)
}

func (t *ticketScreen) edit(ticket models.Ticket) tea.Cmd {
	t.form.Edit(ticket)
	t.loadDraft()
	t.focus = focusTitle
	return t.focusCurrent()
}

func (t *ticketScreen) confirmDelete(ctx context.Context) {
	id := *t.confirmID
	t.confirmID = nil
	if err := t.form.Delete(ctx, id); err != nil {
		return
	}
	t.loadDraft()
	t.reload(ctx)
}

func (a *App) updateTickets(msg tea.Msg) tea.Cmd {
	t := &a.board
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if t.confirmID != nil {
		switch key.String() {
		case "y", "Y":
			t.confirmDelete(a.ctx)
		default:
			t.confirmID = nil
		}
		return nil
	}

	switch key.Type {
	case tea.KeyEsc:
		if t.form.Editing() {
			t.form.Reset()
			t.loadDraft()
			return nil
		}
		return a.navigate(middleware.RouteDashboard, "")
	case tea.KeyTab:
		return t.moveFocus(1)
	case tea.KeyShiftTab:
		return t.moveFocus(-1)
	}

	switch t.focus {
	case focusTitle, focusDescription:
		if key.Type == tea.KeyEnter {
			t.submit(a.ctx)
			return nil
		}
		var cmd tea.Cmd
		if t.focus == focusTitle {
			t.title, cmd = t.title.Update(msg)
		} else {
			t.description, cmd = t.description.Update(msg)
		}
		return cmd

	case focusStatus:
		switch key.String() {
		case "left", "h":
			t.cycleStatus(-1)
		case "right", "l", " ":
			t.cycleStatus(1)
		case "enter":
			t.submit(a.ctx)
		}
		return nil

	case focusSearch:
		if key.Type == tea.KeyEnter {
			t.focus = focusList
			return t.focusCurrent()
		}
		var cmd tea.Cmd
		t.search, cmd = t.search.Update(msg)
		t.applySearch()
		return cmd

	case focusList:
		switch key.String() {
		case "up", "k":
			if t.cursor > 0 {
				t.cursor--
			}
		case "down", "j":
			if t.cursor < len(t.visible)-1 {
				t.cursor++
			}
		case "e", "enter":
			if ticket, ok := t.selected(); ok {
				return t.edit(ticket)
			}
		case "d", "x":
			if ticket, ok := t.selected(); ok {
				id := ticket.ID
				t.confirmID = &id
			}
		case "/":
			t.focus = focusSearch
			return t.focusCurrent()
		case "r":
			t.reload(a.ctx)
		}
	}
	return nil
}

func (a *App) viewTickets() string {
	t := &a.board
	s := a.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("Ticket Management"))
	b.WriteString("\n")
	if t.form.Error != "" {
		b.WriteString(s.Error.Render(t.form.Error) + "\n")
	}
	if t.form.Success != "" {
		b.WriteString(s.Success.Render(t.form.Success) + "\n")
	}
	if t.loadErr != "" {
		b.WriteString(s.Error.Render(t.loadErr) + "\n")
	}

	label := func(text string, f ticketFocus) string {
		if t.focus == f {
			return s.Focused.Render(text)
		}
		return text
	}

	heading := "New ticket"
	if t.form.Editing() {
		heading = fmt.Sprintf("Editing ticket #%d (esc to cancel)", t.form.EditID())
	}
	b.WriteString(s.Subtle.Render(heading) + "\n")
	b.WriteString(label("Title", focusTitle) + "\n" + t.title.View() + "\n")
	b.WriteString(label("Description", focusDescription) + "\n" + t.description.View() + "\n")
	b.WriteString(label("Status", focusStatus) + "  ")
	for _, status := range models.Statuses {
		text := status.Label()
		if status == t.form.Status {
			text = s.Selected.Render(text)
		}
		b.WriteString(text + "  ")
	}
	b.WriteString("\n\n")

	b.WriteString(label("Search", focusSearch) + "\n" + t.search.View() + "\n\n")

	b.WriteString(label(fmt.Sprintf("Tickets (%d)", len(t.visible)), focusList) + "\n")
	if len(t.visible) == 0 {
		b.WriteString(s.Subtle.Render("No tickets yet.") + "\n")
	}
	for i, ticket := range t.visible {
		badge := s.Status[string(ticket.Status)].Render(ticket.Status.Label())
		line := fmt.Sprintf("%-12s %s", badge, ticket.Title)
		if ticket.Description != "" {
			line += s.Subtle.Render(" - " + ticket.Description)
		}
		if t.focus == focusList && i == t.cursor {
			line = s.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if t.confirmID != nil {
		b.WriteString("\n" + s.Error.Render(fmt.Sprintf("Delete ticket #%d? (y/n)", *t.confirmID)) + "\n")
	}

	b.WriteString(s.Help.Render("tab next section • enter save/edit • ←/→ status • d delete • / search • esc back"))
	return b.String()
}
