package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/ticketapp/internal/middleware"
	"github.com/mmynk/ticketapp/internal/models"
	"github.com/mmynk/ticketapp/internal/service"
)

// App is the root Bubble Tea model. It owns one model per screen and routes
// every navigation through the guard.
type App struct {
	ctx     context.Context
	auth    *service.AuthService
	tickets *service.TicketService
	guard   *middleware.Guard
	styles  Styles

	route   middleware.Route
	session *models.Session
	// flash is a message carried into the next screen.
	flash string

	login     loginScreen
	signup    signupScreen
	dashboard dashboardScreen
	board     ticketScreen

	width  int
	height int
}

// New creates the terminal UI starting at start (usually "/").
func New(ctx context.Context, auth *service.AuthService, tickets *service.TicketService, start middleware.Route) *App {
	a := &App{
		ctx:     ctx,
		auth:    auth,
		tickets: tickets,
		guard:   middleware.NewGuard(auth.Sessions()),
		styles:  DefaultStyles(),
		login:   newLoginScreen(),
		signup:  newSignupScreen(),
		board:   newTicketScreen(tickets),
	}
	a.navigate(start, "")
	return a
}

// Route returns the screen currently shown.
func (a *App) Route() middleware.Route {
	return a.route
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.focusCmd()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
	}

	switch a.route {
	case middleware.RouteLogin:
		return a, a.updateLogin(msg)
	case middleware.RouteSignup:
		return a, a.updateSignup(msg)
	case middleware.RouteDashboard:
		return a, a.updateDashboard(msg)
	case middleware.RouteTickets:
		return a, a.updateTickets(msg)
	default:
		return a, a.updateLanding(msg)
	}
}

// View implements tea.Model.
func (a *App) View() string {
	switch a.route {
	case middleware.RouteLogin:
		return a.viewLogin()
	case middleware.RouteSignup:
		return a.viewSignup()
	case middleware.RouteDashboard:
		return a.viewDashboard()
	case middleware.RouteTickets:
		return a.viewTickets()
	default:
		return a.viewLanding()
	}
}

// navigate resolves path through the guard and prepares the target screen.
func (a *App) navigate(path middleware.Route, flash string) tea.Cmd {
	route, session, err := a.guard.Resolve(a.ctx, string(path))
	if err != nil {
		flash = models.UserMessage(err)
	} else if route != path && path.Protected() {
		flash = models.UserMessage(models.NewLoginRequiredError())
	}

	a.route = route
	a.session = session
	a.flash = flash

	switch route {
	case middleware.RouteLogin:
		a.login.reset()
	case middleware.RouteSignup:
		a.signup.reset()
	case middleware.RouteDashboard:
		a.dashboard.load(a.ctx, a.tickets)
	case middleware.RouteTickets:
		a.board.enter(a.ctx)
	}
	return a.focusCmd()
}

func (a *App) focusCmd() tea.Cmd {
	switch a.route {
	case middleware.RouteLogin:
		return a.login.focus()
	case middleware.RouteSignup:
		return a.signup.focus()
	case middleware.RouteTickets:
		return a.board.focusCurrent()
	}
	return nil
}

func (a *App) flashView() string {
	if a.flash == "" {
		return ""
	}
	return a.styles.Success.Render(a.flash) + "\n\n"
}
