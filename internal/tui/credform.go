package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aipilotbyjd/n8njdfront/pkg/api"
	"github.com/aipilotbyjd/n8njdfront/pkg/credentials"
	"github.com/aipilotbyjd/n8njdfront/pkg/notify"
)

type credSavedMsg struct {
	err error
}

// credFormModel is the new-credential form. The field list is rebuilt
// from the registry whenever the type changes; values entered for a
// previous type are dropped with it. Unknown types get the raw JSON
// editor instead.
type credFormModel struct {
	registry *credentials.Registry

	name    textinput.Model
	typeIdx int
	fields  []textinput.Model
	spec    credentials.TypeSpec

	focus int // 0 = name, 1..len(fields) = payload fields
	busy  bool
}

func newCredFormModel() *credFormModel {
	f := &credFormModel{registry: credentials.NewRegistry()}

	f.name = textinput.New()
	f.name.Placeholder = "credential name"
	f.name.Focus()

	f.rebuildFields()

	return f
}

func (f *credFormModel) typeTag() string {
	tags := f.registry.Tags()

	if f.typeIdx < 0 || f.typeIdx >= len(tags) {
		return ""
	}

	return tags[f.typeIdx]
}

// rebuildFields swaps the input set for the active type, discarding
// whatever the previous type had collected.
func (f *credFormModel) rebuildFields() {
	spec, ok := f.registry.Lookup(f.typeTag())
	if !ok {
		f.fields = nil

		return
	}

	f.spec = spec
	f.fields = make([]textinput.Model, len(spec.Fields))

	for i, field := range spec.Fields {
		input := textinput.New()
		input.Placeholder = field.Label

		if field.Secret() {
			input.EchoMode = textinput.EchoPassword
			input.EchoCharacter = '•'
		}

		f.fields[i] = input
	}

	if f.focus > len(f.fields) {
		f.focus = 0
	}

	f.syncFocus()
}

func (f *credFormModel) cycleType(delta int) {
	tags := f.registry.Tags()

	f.typeIdx = (f.typeIdx + delta + len(tags)) % len(tags)
	f.rebuildFields()
}

func (f *credFormModel) cycleFocus() {
	f.focus = (f.focus + 1) % (len(f.fields) + 1)
	f.syncFocus()
}

func (f *credFormModel) syncFocus() {
	if f.focus == 0 {
		f.name.Focus()
	} else {
		f.name.Blur()
	}

	for i := range f.fields {
		if f.focus == i+1 {
			f.fields[i].Focus()
		} else {
			f.fields[i].Blur()
		}
	}
}

func (f *credFormModel) values() map[string]string {
	values := make(map[string]string, len(f.fields))

	for i, field := range f.spec.Fields {
		if i < len(f.fields) {
			values[field.Name] = f.fields[i].Value()
		}
	}

	return values
}

func saveCredentialCmd(ctx context.Context, client *api.Client, req api.CredentialRequest) tea.Cmd {
	return func() tea.Msg {
		_, err := client.Credentials().Create(ctx, req)

		return credSavedMsg{err: err}
	}
}

func (m Model) handleCredFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.credForm

	switch msg.String() {
	case "esc":
		m.credForm = nil

		return m, nil

	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		f.cycleFocus()

		return m, nil

	case "ctrl+n":
		f.cycleType(1)

		return m, nil

	case "ctrl+p":
		f.cycleType(-1)

		return m, nil

	case "enter":
		if f.busy {
			return m, nil
		}

		tag := f.typeTag()
		values := f.values()

		if missing := f.registry.MissingRequired(tag, values); len(missing) > 0 {
			notify.Error(m.ctx, "missing required fields: "+strings.Join(missing, ", "))

			return m, nil
		}

		payload := f.registry.BuildPayload(tag, values)

		if err := f.registry.ValidatePayload(tag, payload); err != nil {
			notify.Error(m.ctx, err.Error())

			return m, nil
		}

		f.busy = true

		return m, saveCredentialCmd(m.ctx, m.deps.Client, api.CredentialRequest{
			Name: f.name.Value(),
			Type: tag,
			Data: payload,
		})
	}

	var cmd tea.Cmd

	if f.focus == 0 {
		f.name, cmd = f.name.Update(msg)
	} else if i := f.focus - 1; i < len(f.fields) {
		f.fields[i], cmd = f.fields[i].Update(msg)
	}

	return m, cmd
}

func (f *credFormModel) render(width int) string {
	boxWidth := width - 2
	if boxWidth > 56 {
		boxWidth = 56
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("New credential"),
		"",
		f.name.View(),
		"",
		"type: " + lipgloss.NewStyle().Bold(true).Render(f.spec.Label) +
			dimStyle().Render("  (ctrl+n/ctrl+p to change)"),
		"",
	}

	for i, field := range f.spec.Fields {
		label := field.Label
		if field.Required {
			label += " *"
		}

		lines = append(lines, dimStyle().Render(label), f.fields[i].View())
	}

	if f.busy {
		lines = append(lines, "", dimStyle().Render("saving…"))
	}

	lines = append(lines, "", dimStyle().Render("enter save · tab next field · esc cancel"))

	return panelStyle().Width(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
