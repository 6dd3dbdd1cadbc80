package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aipilotbyjd/n8njdfront/pkg/guard"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Pages   key.Binding
	Refresh key.Binding
	Go      key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Pages: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "page"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Go: key.NewBinding(
			key.WithKeys("g", "w", "e", "c", "t", "b", "v"),
			key.WithHelp("g/w/e/c/t/b/v", "section"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Pages, k.Go, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Pages, k.Refresh},
		{k.Go, k.Help, k.Quit},
	}
}

var _ help.KeyMap = keyMap{}

func (m Model) handleListKey(view resourceView, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		view.moveCursor(-1)

		return m, nil

	case "down", "j":
		view.moveCursor(1)

		return m, nil

	case "r":
		return m, view.refreshCmd(m.ctx)

	case "right":
		return m, view.nextCmd(m.ctx)

	case "left":
		return m, view.prevCmd(m.ctx)

	case "enter":
		if m.route == guard.RouteWorkflows {
			if workflow, ok := m.workflows.selected(); ok {
				return m, openEditorCmd(m.ctx, m.deps.Client, workflow.ID)
			}
		}

		return m, nil

	case "N":
		switch m.route {
		case guard.RouteWorkflows:
			return m, openEditorCmd(m.ctx, m.deps.Client, 0)
		case guard.RouteCredentials:
			m.credForm = newCredFormModel()

			return m, nil
		}

		return m, nil
	}

	if act, ok := view.action(m.ctx, msg.String()); ok {
		if act.prompt != "" {
			m.confirm = &confirmModel{prompt: act.prompt, run: act.run}

			return m, nil
		}

		return m, act.run
	}

	return m, nil
}
