package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aipilotbyjd/n8njdfront/pkg/api"
	"github.com/aipilotbyjd/n8njdfront/pkg/models"
	"github.com/aipilotbyjd/n8njdfront/pkg/notify"
)

type settingsMsg struct {
	settings *models.NotificationSettings
	err      error
}

type settingsSavedMsg struct {
	err error
}

type passwordSavedMsg struct {
	err error
}

// settingsModel edits the account notification switches. Toggles are
// local until saved; nothing is sent per keystroke. A password form can
// be opened over the switch list.
type settingsModel struct {
	settings *models.NotificationSettings
	cursor   int
	loading  bool
	busy     bool
	err      error
	password *passwordForm
}

type settingsSwitch struct {
	label string
	get   func(*models.NotificationSettings) bool
	set   func(*models.NotificationSettings, bool)
}

var settingsSwitches = []settingsSwitch{
	{
		label: "Email on failure",
		get:   func(s *models.NotificationSettings) bool { return s.EmailOnFailure },
		set:   func(s *models.NotificationSettings, v bool) { s.EmailOnFailure = v },
	},
	{
		label: "Email on success",
		get:   func(s *models.NotificationSettings) bool { return s.EmailOnSuccess },
		set:   func(s *models.NotificationSettings, v bool) { s.EmailOnSuccess = v },
	},
	{
		label: "Weekly summary",
		get:   func(s *models.NotificationSettings) bool { return s.WeeklySummary },
		set:   func(s *models.NotificationSettings, v bool) { s.WeeklySummary = v },
	},
	{
		label: "Product updates",
		get:   func(s *models.NotificationSettings) bool { return s.ProductUpdates },
		set:   func(s *models.NotificationSettings, v bool) { s.ProductUpdates = v },
	},
	{
		label: "Security alerts",
		get:   func(s *models.NotificationSettings) bool { return s.SecurityAlerts },
		set:   func(s *models.NotificationSettings, v bool) { s.SecurityAlerts = v },
	},
	{
		label: "Workflow sharing",
		get:   func(s *models.NotificationSettings) bool { return s.WorkflowSharing },
		set:   func(s *models.NotificationSettings, v bool) { s.WorkflowSharing = v },
	},
}

func newSettingsModel() settingsModel {
	return settingsModel{loading: true}
}

// passwordForm rotates the account password from inside the settings
// view. Validation beyond matching confirmation is left to the API.
type passwordForm struct {
	inputs [3]textinput.Model
	focus  int
	busy   bool
}

func newPasswordForm() *passwordForm {
	placeholders := [3]string{"current password", "new password", "confirm new password"}

	form := &passwordForm{}
	for i, placeholder := range placeholders {
		input := textinput.New()
		input.Placeholder = placeholder
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '•'
		form.inputs[i] = input
	}

	form.inputs[0].Focus()

	return form
}

func (f *passwordForm) cycleFocus() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *passwordForm) request() api.ChangePasswordRequest {
	return api.ChangePasswordRequest{
		CurrentPassword:      f.inputs[0].Value(),
		Password:             f.inputs[1].Value(),
		PasswordConfirmation: f.inputs[2].Value(),
	}
}

func changePasswordCmd(ctx context.Context, client *api.Client, req api.ChangePasswordRequest) tea.Cmd {
	return func() tea.Msg {
		return passwordSavedMsg{err: client.Auth().ChangePassword(ctx, req)}
	}
}

func fetchSettingsCmd(ctx context.Context, client *api.Client) tea.Cmd {
	return func() tea.Msg {
		settings, err := client.Notifications().Settings(ctx)

		return settingsMsg{settings: settings, err: err}
	}
}

func saveSettingsCmd(ctx context.Context, client *api.Client, settings models.NotificationSettings) tea.Cmd {
	return func() tea.Msg {
		return settingsSavedMsg{err: client.Notifications().UpdateSettings(ctx, settings)}
	}
}

func (s *settingsModel) apply(msg settingsMsg) {
	s.loading = false
	s.err = msg.err

	if msg.err == nil {
		s.settings = msg.settings
	}
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.settings

	if s.password != nil {
		return m.handlePasswordKey(msg)
	}

	switch msg.String() {
	case "p":
		s.password = newPasswordForm()

		return m, nil
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}

		return m, nil

	case "down", "j":
		if s.cursor < len(settingsSwitches)-1 {
			s.cursor++
		}

		return m, nil

	case " ":
		if s.settings != nil {
			sw := settingsSwitches[s.cursor]
			sw.set(s.settings, !sw.get(s.settings))
		}

		return m, nil

	case "enter":
		if s.settings == nil || s.busy {
			return m, nil
		}

		s.busy = true

		return m, saveSettingsCmd(m.ctx, m.deps.Client, *s.settings)

	case "r":
		s.loading = true

		return m, fetchSettingsCmd(m.ctx, m.deps.Client)
	}

	return m, nil
}

func (m Model) handlePasswordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.settings.password

	switch msg.String() {
	case "esc":
		if !form.busy {
			m.settings.password = nil
		}

		return m, nil

	case "tab", "shift+tab":
		form.cycleFocus()

		return m, nil

	case "enter":
		if form.busy {
			return m, nil
		}

		req := form.request()
		if req.Password != req.PasswordConfirmation {
			notify.Error(m.ctx, "Passwords do not match")

			return m, nil
		}

		form.busy = true

		return m, changePasswordCmd(m.ctx, m.deps.Client, req)

	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	form.inputs[form.focus], cmd = form.inputs[form.focus].Update(msg)

	return m, cmd
}

func (s settingsModel) render(width int) string {
	boxWidth := width - 2
	if boxWidth > 48 {
		boxWidth = 48
	}

	if s.password != nil {
		return s.password.render(boxWidth)
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Render("Notification settings"), ""}

	switch {
	case s.loading && s.settings == nil:
		lines = append(lines, dimStyle().Render("loading…"))

	case s.settings == nil:
		if s.err != nil {
			lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(s.err.Error()))
		}

	default:
		for i, sw := range settingsSwitches {
			mark := "[ ]"
			if sw.get(s.settings) {
				mark = "[x]"
			}

			line := mark + " " + sw.label
			if i == s.cursor {
				line = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Render("> " + line)
			} else {
				line = "  " + line
			}

			lines = append(lines, line)
		}
	}

	if s.busy {
		lines = append(lines, "", dimStyle().Render("saving…"))
	}

	lines = append(lines, "", dimStyle().Render("space toggle · enter save · p password · r reload"))

	return panelStyle().Width(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (f passwordForm) render(boxWidth int) string {
	lines := []string{lipgloss.NewStyle().Bold(true).Render("Change password"), ""}

	for _, input := range f.inputs {
		lines = append(lines, input.View())
	}

	if f.busy {
		lines = append(lines, "", dimStyle().Render("saving…"))
	}

	lines = append(lines, "", dimStyle().Render("enter submit · tab next field · esc cancel"))

	return panelStyle().Width(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
