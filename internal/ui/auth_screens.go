package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/ticketapp/internal/middleware"
	"github.com/mmynk/ticketapp/internal/models"
)

const signupSuccess = "Account created successfully! Please log in."

// inputGroup is a column of text inputs with one focused at a time.
type inputGroup struct {
	inputs  []textinput.Model
	focused int
	err     string
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func (g *inputGroup) reset() {
	for i := range g.inputs {
		g.inputs[i].Reset()
		g.inputs[i].Blur()
	}
	g.focused = 0
	g.err = ""
}

func (g *inputGroup) focus() tea.Cmd {
	for i := range g.inputs {
		g.inputs[i].Blur()
	}
	return g.inputs[g.focused].Focus()
}

func (g *inputGroup) move(delta int) tea.Cmd {
	n := len(g.inputs)
	g.focused = (g.focused + delta + n) % n
	return g.focus()
}

// update sends msg to the focused input.
func (g *inputGroup) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	g.inputs[g.focused], cmd = g.inputs[g.focused].Update(msg)
	return cmd
}

func (g *inputGroup) value(i int) string {
	return g.inputs[i].Value()
}

func (g *inputGroup) view(s Styles, labels []string) string {
	var b strings.Builder
	if g.err != "" {
		b.WriteString(s.Error.Render(g.err))
		b.WriteString("\n\n")
	}
	for i, in := range g.inputs {
		label := labels[i]
		if i == g.focused {
			label = s.Focused.Render(label)
		}
		b.WriteString(label + "\n" + in.View() + "\n\n")
	}
	return b.String()
}

type loginScreen struct{ inputGroup }

func newLoginScreen() loginScreen {
	return loginScreen{inputGroup{inputs: []textinput.Model{
		newInput("Email", false),
		newInput("Password", true),
	}}}
}

type signupScreen struct{ inputGroup }

func newSignupScreen() signupScreen {
	return signupScreen{inputGroup{inputs: []textinput.Model{
		newInput("Email", false),
		newInput("Password", true),
		newInput("Confirm Password", true),
	}}}
}

func (a *App) updateLogin(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a.login.update(msg)
	}
	switch key.Type {
	case tea.KeyEsc:
		return a.navigate(middleware.RouteLanding, "")
	case tea.KeyCtrlN:
		return a.navigate(middleware.RouteSignup, "")
	case tea.KeyTab, tea.KeyDown:
		return a.login.move(1)
	case tea.KeyShiftTab, tea.KeyUp:
		return a.login.move(-1)
	case tea.KeyEnter:
		a.flash = ""
		_, err := a.auth.Login(a.ctx, a.login.value(0), a.login.value(1))
		if err != nil {
			a.login.err = models.UserMessage(err)
			return nil
		}
		return a.navigate(middleware.RouteDashboard, "")
	}
	return a.login.update(msg)
}

func (a *App) viewLogin() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Login"))
	b.WriteString("\n")
	b.WriteString(a.flashView())
	b.WriteString(a.login.view(a.styles, []string{"Email", "Password"}))
	b.WriteString(a.styles.Help.Render("enter login • tab next field • ctrl+n sign up • esc back"))
	return b.String()
}

func (a *App) updateSignup(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a.signup.update(msg)
	}
	switch key.Type {
	case tea.KeyEsc:
		return a.navigate(middleware.RouteLanding, "")
	case tea.KeyCtrlL:
		return a.navigate(middleware.RouteLogin, "")
	case tea.KeyTab, tea.KeyDown:
		return a.signup.move(1)
	case tea.KeyShiftTab, tea.KeyUp:
		return a.signup.move(-1)
	case tea.KeyEnter:
		a.flash = ""
		err := a.auth.SignUp(a.ctx, a.signup.value(0), a.signup.value(1), a.signup.value(2))
		if err != nil {
			a.signup.err = models.UserMessage(err)
			return nil
		}
		return a.navigate(middleware.RouteLogin, signupSuccess)
	}
	return a.signup.update(msg)
}

func (a *App) viewSignup() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Sign Up"))
	b.WriteString("\n")
	b.WriteString(a.flashView())
	b.WriteString(a.signup.view(a.styles, []string{"Email", "Password", "Confirm Password"}))
	b.WriteString(a.styles.Help.Render("enter sign up • tab next field • ctrl+l login • esc back"))
	return b.String()
}
