package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmModel is the yes/no dialog shown before a destructive action. It
// holds the prepared command and only releases it on an explicit yes.
type confirmModel struct {
	prompt string
	run    tea.Cmd
}

func (c confirmModel) render(width int) string {
	boxWidth := width - 2
	if boxWidth > 56 {
		boxWidth = 56
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(c.prompt),
		"",
		dimStyle().Render("y confirm · n/esc cancel"),
	)

	return panelStyle().Width(boxWidth).Render(content)
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		run := m.confirm.run
		m.confirm = nil

		return m, run

	case "n", "N", "esc":
		m.confirm = nil

		return m, nil
	}

	return m, nil
}
