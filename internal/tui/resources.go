package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aipilotbyjd/n8njdfront/pkg/api"
	"github.com/aipilotbyjd/n8njdfront/pkg/controller"
	"github.com/aipilotbyjd/n8njdfront/pkg/models"
)

type fetchedMsg struct{ err error }

type mutatedMsg struct{ err error }

// resourceView is what the root model needs from every list view,
// independent of the item type.
type resourceView interface {
	pagerInvalidate()
	moveCursor(delta int)
	render(width, height int) string

	loadCmd(ctx context.Context) tea.Cmd
	refreshCmd(ctx context.Context) tea.Cmd
	nextCmd(ctx context.Context) tea.Cmd
	prevCmd(ctx context.Context) tea.Cmd

	action(ctx context.Context, key string) (listAction, bool)
}

// listAction is a prepared user action. A non-empty prompt means the root
// model must confirm before running it.
type listAction struct {
	prompt string
	run    tea.Cmd
}

// actionSpec declares one key-bound mutation on a list view.
type actionSpec[T any] struct {
	// prompt, when set, builds the confirmation question for the item.
	prompt func(T) string

	success string
	call    func(ctx context.Context, item T) error
}

// resourceModel drives one paged list view over the shared controller.
type resourceModel[T any] struct {
	title   string
	columns []string
	row     func(T) []string
	pager   *controller.Pager[T]
	actions map[string]actionSpec[T]

	cursor int
}

func (r *resourceModel[T]) pagerInvalidate() { r.pager.Invalidate() }

func (r *resourceModel[T]) moveCursor(delta int) {
	count := len(r.pager.Items())
	if count == 0 {
		r.cursor = 0

		return
	}

	r.cursor += delta
	if r.cursor < 0 {
		r.cursor = 0
	}

	if r.cursor >= count {
		r.cursor = count - 1
	}
}

func (r *resourceModel[T]) selected() (T, bool) {
	items := r.pager.Items()
	if r.cursor >= len(items) {
		var zero T

		return zero, false
	}

	return items[r.cursor], true
}

func (r *resourceModel[T]) loadCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg { return fetchedMsg{err: r.pager.Load(ctx)} }
}

func (r *resourceModel[T]) refreshCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg { return fetchedMsg{err: r.pager.Refresh(ctx)} }
}

func (r *resourceModel[T]) nextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg { return fetchedMsg{err: r.pager.Next(ctx)} }
}

func (r *resourceModel[T]) prevCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg { return fetchedMsg{err: r.pager.Prev(ctx)} }
}

func (r *resourceModel[T]) action(ctx context.Context, key string) (listAction, bool) {
	spec, ok := r.actions[key]
	if !ok {
		return listAction{}, false
	}

	item, ok := r.selected()
	if !ok {
		return listAction{}, false
	}

	destructive := spec.prompt != nil

	run := func() tea.Msg {
		err := r.pager.Mutate(ctx, controller.Mutation{
			Success:     spec.success,
			Destructive: destructive,
			Confirm:     func() bool { return true },
			Action: func(ctx context.Context) error {
				return spec.call(ctx, item)
			},
		})

		return mutatedMsg{err: err}
	}

	prompt := ""
	if destructive {
		prompt = spec.prompt(item)
	}

	return listAction{prompt: prompt, run: run}, true
}

func (r *resourceModel[T]) render(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render(r.title))
	b.WriteString("\n")

	switch r.pager.State() {
	case controller.StateLoading:
		b.WriteString(dimStyle().Render("loading…"))
		b.WriteString("\n")
	case controller.StateErrored:
		if err := r.pager.Err(); err != nil {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(err.Error()))
			b.WriteString("\n")
		}
	}

	items := r.pager.Items()

	if len(items) == 0 && r.pager.State() == controller.StateReady {
		b.WriteString(dimStyle().Render("nothing here yet"))

		return panelStyle().Width(width - 2).Height(height).Render(b.String())
	}

	widths := make([]int, len(r.columns))
	rows := make([][]string, 0, len(items))

	for _, item := range items {
		row := r.row(item)
		rows = append(rows, row)

		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, column := range r.columns {
		if len(column) > widths[i] {
			widths[i] = len(column)
		}
	}

	b.WriteString(dimStyle().Render(formatRow(r.columns, widths)))
	b.WriteString("\n")

	for i, row := range rows {
		line := formatRow(row, widths)

		if i == r.cursor {
			line = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Render("> " + line)
		} else {
			line = "  " + line
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	if page := r.pager.Page(); page.LastPage > 1 {
		b.WriteString(dimStyle().Render(fmt.Sprintf("page %d/%d", page.CurrentPage, page.LastPage)))
	}

	return panelStyle().Width(width - 2).Height(height).Render(b.String())
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))

	for i, cell := range cells {
		width := len(cell)
		if i < len(widths) {
			width = widths[i]
		}

		parts[i] = fmt.Sprintf("%-*s", width, cell)
	}

	return strings.Join(parts, "  ")
}

func newWorkflowList(client *api.Client) *resourceModel[models.Workflow] {
	return &resourceModel[models.Workflow]{
		title:   "Workflows",
		columns: []string{"ID", "NAME", "STATUS", "NODES", "RUNS"},
		row: func(w models.Workflow) []string {
			status := "inactive"
			if w.IsActive {
				status = "active"
			}

			return []string{
				strconv.FormatInt(w.ID, 10),
				w.Name,
				status,
				strconv.Itoa(len(w.Nodes)),
				strconv.Itoa(w.ExecutionCount),
			}
		},
		pager: controller.NewPager(func(ctx context.Context, page int) ([]models.Workflow, api.Page, error) {
			return client.Workflows().List(ctx, page)
		}),
		actions: map[string]actionSpec[models.Workflow]{
			"a": {
				success: "workflow activated",
				call: func(ctx context.Context, w models.Workflow) error {
					return client.Workflows().Activate(ctx, w.ID)
				},
			},
			"x": {
				success: "workflow deactivated",
				call: func(ctx context.Context, w models.Workflow) error {
					return client.Workflows().Deactivate(ctx, w.ID)
				},
			},
			"u": {
				success: "workflow duplicated",
				call: func(ctx context.Context, w models.Workflow) error {
					_, err := client.Workflows().Duplicate(ctx, w.ID)

					return err
				},
			},
			"R": {
				success: "execution started",
				call: func(ctx context.Context, w models.Workflow) error {
					return client.Workflows().Execute(ctx, w.ID, nil)
				},
			},
			"D": {
				prompt: func(w models.Workflow) string {
					return fmt.Sprintf("Delete workflow %q?", w.Name)
				},
				success: "workflow deleted",
				call: func(ctx context.Context, w models.Workflow) error {
					return client.Workflows().Delete(ctx, w.ID)
				},
			},
		},
	}
}

func newExecutionList(client *api.Client) *resourceModel[models.Execution] {
	return &resourceModel[models.Execution]{
		title:   "Executions",
		columns: []string{"ID", "WORKFLOW", "STATUS", "MODE", "STARTED"},
		row: func(e models.Execution) []string {
			started := "-"
			if e.StartedAt != nil {
				started = e.StartedAt.Format("2006-01-02 15:04")
			}

			return []string{
				strconv.FormatInt(e.ID, 10),
				e.WorkflowName,
				string(e.Status),
				e.Mode,
				started,
			}
		},
		pager: controller.NewPager(func(ctx context.Context, page int) ([]models.Execution, api.Page, error) {
			return client.Executions().List(ctx, page, api.DefaultPerPage)
		}),
		actions: map[string]actionSpec[models.Execution]{
			"s": {
				success: "stop requested",
				call: func(ctx context.Context, e models.Execution) error {
					return client.Executions().Stop(ctx, e.ID)
				},
			},
			"R": {
				success: "retry requested",
				call: func(ctx context.Context, e models.Execution) error {
					return client.Executions().Retry(ctx, e.ID)
				},
			},
		},
	}
}

func newCredentialList(client *api.Client) *resourceModel[models.Credential] {
	return &resourceModel[models.Credential]{
		title:   "Credentials",
		columns: []string{"ID", "NAME", "TYPE"},
		row: func(c models.Credential) []string {
			return []string{strconv.FormatInt(c.ID, 10), c.Name, c.Type}
		},
		pager: controller.NewPager(func(ctx context.Context, _ int) ([]models.Credential, api.Page, error) {
			list, err := client.Credentials().List(ctx)

			return list, api.Page{}, err
		}),
		actions: map[string]actionSpec[models.Credential]{
			"T": {
				success: "credential ok",
				call: func(ctx context.Context, c models.Credential) error {
					return client.Credentials().Test(ctx, c.ID)
				},
			},
			"D": {
				prompt: func(c models.Credential) string {
					return fmt.Sprintf("Delete credential %q?", c.Name)
				},
				success: "credential deleted",
				call: func(ctx context.Context, c models.Credential) error {
					return client.Credentials().Delete(ctx, c.ID)
				},
			},
		},
	}
}

func newTemplateList(client *api.Client) *resourceModel[models.Template] {
	return &resourceModel[models.Template]{
		title:   "Templates",
		columns: []string{"ID", "NAME", "NODES", "USED"},
		row: func(t models.Template) []string {
			return []string{
				strconv.FormatInt(t.ID, 10),
				t.Name,
				strconv.Itoa(t.Nodes),
				strconv.Itoa(t.UsageCount),
			}
		},
		pager: controller.NewPager(func(ctx context.Context, page int) ([]models.Template, api.Page, error) {
			return client.Templates().List(ctx, page, 0)
		}),
		actions: map[string]actionSpec[models.Template]{
			"u": {
				success: "workflow created from template",
				call: func(ctx context.Context, t models.Template) error {
					_, err := client.Templates().Use(ctx, t.ID)

					return err
				},
			},
		},
	}
}

func newWebhookList(client *api.Client) *resourceModel[models.Webhook] {
	return &resourceModel[models.Webhook]{
		title:   "Webhooks",
		columns: []string{"ID", "WORKFLOW", "METHOD", "PATH", "TRIGGERED"},
		row: func(w models.Webhook) []string {
			return []string{
				strconv.FormatInt(w.ID, 10),
				strconv.FormatInt(w.WorkflowID, 10),
				w.Method,
				w.Path,
				strconv.Itoa(w.TriggerCount),
			}
		},
		pager: controller.NewPager(func(ctx context.Context, _ int) ([]models.Webhook, api.Page, error) {
			list, err := client.Webhooks().List(ctx)

			return list, api.Page{}, err
		}),
		actions: map[string]actionSpec[models.Webhook]{
			"T": {
				success: "test fired",
				call: func(ctx context.Context, w models.Webhook) error {
					return client.Webhooks().Test(ctx, w.ID)
				},
			},
			"D": {
				prompt: func(w models.Webhook) string {
					return fmt.Sprintf("Delete webhook %s?", w.Path)
				},
				success: "webhook deleted",
				call: func(ctx context.Context, w models.Webhook) error {
					return client.Webhooks().Delete(ctx, w.ID)
				},
			},
		},
	}
}

func newVariableList(client *api.Client) *resourceModel[models.Variable] {
	return &resourceModel[models.Variable]{
		title:   "Variables",
		columns: []string{"ID", "KEY", "VALUE", "SCOPE"},
		row: func(v models.Variable) []string {
			scope := "global"
			if v.WorkflowID != nil {
				scope = "workflow " + strconv.FormatInt(*v.WorkflowID, 10)
			}

			return []string{strconv.FormatInt(v.ID, 10), v.Key, v.Value, scope}
		},
		pager: controller.NewPager(func(ctx context.Context, _ int) ([]models.Variable, api.Page, error) {
			list, err := client.Variables().List(ctx)

			return list, api.Page{}, err
		}),
		actions: map[string]actionSpec[models.Variable]{
			"D": {
				prompt: func(v models.Variable) string {
					return fmt.Sprintf("Delete variable %q?", v.Key)
				},
				success: "variable deleted",
				call: func(ctx context.Context, v models.Variable) error {
					return client.Variables().Delete(ctx, v.ID)
				},
			},
		},
	}
}
