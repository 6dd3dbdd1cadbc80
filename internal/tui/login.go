package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aipilotbyjd/n8njdfront/pkg/api"
	"github.com/aipilotbyjd/n8njdfront/pkg/guard"
	"github.com/aipilotbyjd/n8njdfront/pkg/notify"
	"github.com/aipilotbyjd/n8njdfront/pkg/session"
)

type loginResultMsg struct {
	result *api.LoginResult
	err    error
}

// loginModel is the credentials form shown whenever the guard bounces an
// unauthenticated visitor.
type loginModel struct {
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginModel{email: email, password: password}
}

func (l *loginModel) cycleFocus() {
	l.focus = (l.focus + 1) % 2

	if l.focus == 0 {
		l.email.Focus()
		l.password.Blur()
	} else {
		l.email.Blur()
		l.password.Focus()
	}
}

func (l loginModel) render(width int) string {
	form := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render("Log in"),
		"",
		l.email.View(),
		l.password.View(),
		"",
		dimStyle().Render("enter submit · tab next field · ctrl+c quit"),
	)

	if l.busy {
		form = lipgloss.JoinVertical(lipgloss.Left, form, "", dimStyle().Render("signing in…"))
	}

	boxWidth := width - 2
	if boxWidth > 48 {
		boxWidth = 48
	}

	return panelStyle().Width(boxWidth).Render(form)
}

func loginCmd(ctx context.Context, client *api.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Auth().Login(ctx, api.LoginRequest{
			Email:    email,
			Password: password,
		})

		return loginResultMsg{result: result, err: err}
	}
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab", "shift+tab":
		m.login.cycleFocus()

		return m, nil

	case "enter":
		if m.login.busy {
			return m, nil
		}

		m.login.busy = true

		return m, loginCmd(m.ctx, m.deps.Client, m.login.email.Value(), m.login.password.Value())
	}

	var cmd tea.Cmd

	if m.login.focus == 0 {
		m.login.email, cmd = m.login.email.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}

	return m, cmd
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false

	if msg.err != nil {
		notify.Error(m.ctx, msg.err.Error())

		return m, nil
	}

	err := m.deps.Sessions.Save(session.Session{
		Token:        msg.result.Token,
		User:         msg.result.User,
		Organization: msg.result.Organization,
	})
	if err != nil {
		notify.Error(m.ctx, err.Error())

		return m, nil
	}

	notify.Success(m.ctx, "logged in")

	return m, m.navigate(guard.RouteDashboard)
}
