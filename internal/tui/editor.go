package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aipilotbyjd/n8njdfront/pkg/api"
	"github.com/aipilotbyjd/n8njdfront/pkg/graph"
	"github.com/aipilotbyjd/n8njdfront/pkg/models"
)

type editorOpenedMsg struct {
	editor *editorModel
	err    error
}

type editorSavedMsg struct {
	workflow *models.Workflow
	err      error
}

type editorFocus int

const (
	editorFocusPalette editorFocus = iota
	editorFocusNodes
)

// editorModel is the interactive graph editor: the node palette on the
// left, the placed nodes on the right, and a single-line input for
// renames and the workflow name.
type editorModel struct {
	editor *graph.Editor

	focus         editorFocus
	paletteCursor int
	nodeCursor    int

	// connectFrom holds the source node while picking the target.
	connectFrom string

	input      textinput.Model
	inputField string // "", "name", "label"

	busy bool
}

func openEditorCmd(ctx context.Context, client *api.Client, workflowID int64) tea.Cmd {
	return func() tea.Msg {
		if workflowID == 0 {
			return editorOpenedMsg{editor: newEditorModel(graph.NewEditor())}
		}

		workflow, err := client.Workflows().Get(ctx, workflowID)
		if err != nil {
			return editorOpenedMsg{err: err}
		}

		return editorOpenedMsg{editor: newEditorModel(graph.EditorFor(workflow))}
	}
}

func newEditorModel(editor *graph.Editor) *editorModel {
	input := textinput.New()
	input.CharLimit = 120

	return &editorModel{editor: editor, input: input}
}

func saveEditorCmd(ctx context.Context, client *api.Client, editor *graph.Editor) tea.Cmd {
	return func() tea.Msg {
		workflow, err := editor.Save(ctx, client.Workflows())

		return editorSavedMsg{workflow: workflow, err: err}
	}
}

func (e *editorModel) nodes() []models.Node {
	return e.editor.Nodes()
}

func (e *editorModel) selectedNode() (models.Node, bool) {
	nodes := e.nodes()
	if e.nodeCursor >= len(nodes) {
		return models.Node{}, false
	}

	return nodes[e.nodeCursor], true
}

func (e *editorModel) clampCursors() {
	if e.paletteCursor < 0 {
		e.paletteCursor = 0
	}

	if e.paletteCursor >= len(graph.Palette) {
		e.paletteCursor = len(graph.Palette) - 1
	}

	count := len(e.nodes())
	if e.nodeCursor >= count && count > 0 {
		e.nodeCursor = count - 1
	}

	if e.nodeCursor < 0 || count == 0 {
		e.nodeCursor = 0
	}
}

func (e *editorModel) startInput(field, initial string) {
	e.inputField = field
	e.input.SetValue(initial)
	e.input.CursorEnd()
	e.input.Focus()
}

func (e *editorModel) finishInput() {
	value := strings.TrimSpace(e.input.Value())

	switch e.inputField {
	case "name":
		if value != "" {
			e.editor.Name = value
		}
	case "label":
		if node, ok := e.selectedNode(); ok && value != "" {
			_ = e.editor.Rename(node.ID, value)
		}
	}

	e.inputField = ""
	e.input.Blur()
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.editor

	if e.inputField != "" {
		switch msg.String() {
		case "enter":
			e.finishInput()

			return m, nil
		case "esc":
			e.inputField = ""
			e.input.Blur()

			return m, nil
		}

		var cmd tea.Cmd
		e.input, cmd = e.input.Update(msg)

		return m, cmd
	}

	switch msg.String() {
	case "esc", "q":
		m.editor = nil

		if view := m.active(); view != nil {
			return m, view.refreshCmd(m.ctx)
		}

		return m, nil

	case "tab":
		if e.focus == editorFocusPalette {
			e.focus = editorFocusNodes
		} else {
			e.focus = editorFocusPalette
		}

		return m, nil

	case "up", "k":
		if e.focus == editorFocusPalette {
			e.paletteCursor--
		} else {
			e.nodeCursor--
		}

		e.clampCursors()

		return m, nil

	case "down", "j":
		if e.focus == editorFocusPalette {
			e.paletteCursor++
		} else {
			e.nodeCursor++
		}

		e.clampCursors()

		return m, nil

	case "enter":
		if e.focus == editorFocusPalette {
			e.editor.AddNode(graph.Palette[e.paletteCursor])

			return m, nil
		}

		// On the node pane enter picks the connect source, then the
		// target.
		node, ok := e.selectedNode()
		if !ok {
			return m, nil
		}

		if e.connectFrom == "" {
			e.connectFrom = node.ID

			return m, nil
		}

		if _, err := e.editor.Connect(e.connectFrom, node.ID); err != nil {
			e.connectFrom = ""

			return m, nil
		}

		e.connectFrom = ""

		return m, nil

	case "d":
		if e.focus == editorFocusNodes {
			if node, ok := e.selectedNode(); ok {
				_ = e.editor.RemoveNode(node.ID)
				e.clampCursors()
			}
		}

		return m, nil

	case "n":
		e.startInput("name", e.editor.Name)

		return m, nil

	case "l":
		if e.focus == editorFocusNodes {
			if node, ok := e.selectedNode(); ok {
				e.startInput("label", node.Label)
			}
		}

		return m, nil

	case "s":
		if e.busy {
			return m, nil
		}

		e.busy = true

		return m, saveEditorCmd(m.ctx, m.deps.Client, e.editor)

	case "ctrl+c":
		return m, tea.Quit
	}

	return m, nil
}

func (e *editorModel) render(width, height int) string {
	leftW := width / 3
	if leftW < 24 {
		leftW = 24
	}

	rightW := width - leftW - 2
	if rightW < 30 {
		rightW = 30
	}

	var palette strings.Builder

	palette.WriteString(lipgloss.NewStyle().Bold(true).Render("Palette"))
	palette.WriteString("\n")

	lastCategory := ""

	for i, archetype := range graph.Palette {
		if archetype.Category != lastCategory {
			palette.WriteString(dimStyle().Render(archetype.Category))
			palette.WriteString("\n")

			lastCategory = archetype.Category
		}

		line := "  " + archetype.Label
		if i == e.paletteCursor && e.focus == editorFocusPalette {
			line = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Render("> " + archetype.Label)
		}

		palette.WriteString(line)
		palette.WriteString("\n")
	}

	var canvas strings.Builder

	name := e.editor.Name
	if name == "" {
		name = "untitled"
	}

	canvas.WriteString(lipgloss.NewStyle().Bold(true).Render(name))

	if e.editor.WorkflowID != 0 {
		canvas.WriteString(dimStyle().Render(fmt.Sprintf("  #%d", e.editor.WorkflowID)))
	}

	canvas.WriteString("\n\n")

	nodes := e.nodes()
	edges := e.editor.Edges()

	labels := make(map[string]string, len(nodes))
	for _, node := range nodes {
		labels[node.ID] = node.Label
	}

	for i, node := range nodes {
		line := fmt.Sprintf("%s [%s] (%d,%d)", node.Label, node.Category, node.PositionX, node.PositionY)

		switch {
		case node.ID == e.connectFrom:
			line = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("~ " + line)
		case i == e.nodeCursor && e.focus == editorFocusNodes:
			line = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Render("> " + line)
		default:
			line = "  " + line
		}

		canvas.WriteString(line)
		canvas.WriteString("\n")
	}

	if len(nodes) == 0 {
		canvas.WriteString(dimStyle().Render("empty graph, add nodes from the palette"))
		canvas.WriteString("\n")
	}

	if len(edges) > 0 {
		canvas.WriteString("\n")
		canvas.WriteString(dimStyle().Render("connections"))
		canvas.WriteString("\n")

		for _, edge := range edges {
			canvas.WriteString(fmt.Sprintf("  %s → %s\n", labels[edge.Source], labels[edge.Target]))
		}
	}

	if e.inputField != "" {
		canvas.WriteString("\n")
		canvas.WriteString(e.input.View())
	}

	if e.busy {
		canvas.WriteString("\n")
		canvas.WriteString(dimStyle().Render("saving…"))
	}

	canvas.WriteString("\n")
	canvas.WriteString(dimStyle().Render("tab pane · enter add/connect · d delete · l label · n name · s save · esc close"))

	left := panelStyle().Width(leftW).Height(height).Render(palette.String())
	right := panelStyle().Width(rightW).Height(height).Render(canvas.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}
