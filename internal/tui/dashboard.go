package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aipilotbyjd/n8njdfront/pkg/api"
	"github.com/aipilotbyjd/n8njdfront/pkg/models"
)

type dashboardDataMsg struct {
	summary    *models.AnalyticsSummary
	workflows  []models.Workflow
	executions []models.Execution
	err        error
}

// dashboardModel renders the analytics rollup plus the most recent
// workflows and executions. A failed fetch keeps the previous numbers on
// screen next to the error.
type dashboardModel struct {
	summary    *models.AnalyticsSummary
	workflows  []models.Workflow
	executions []models.Execution
	loading    bool
	err        error
}

func newDashboardModel() dashboardModel {
	return dashboardModel{loading: true}
}

func (d *dashboardModel) apply(msg dashboardDataMsg) {
	d.loading = false
	d.err = msg.err

	if msg.err != nil {
		return
	}

	d.summary = msg.summary
	d.workflows = msg.workflows
	d.executions = msg.executions
}

const dashboardRecentCount = 5

func fetchDashboardCmd(ctx context.Context, client *api.Client) tea.Cmd {
	return func() tea.Msg {
		var msg dashboardDataMsg

		msg.summary, msg.err = client.Analytics().Summary(ctx)
		if msg.err != nil {
			return msg
		}

		// The recent lists are decoration; their failures do not blank
		// the dashboard.
		if workflows, _, err := client.Workflows().List(ctx, 1); err == nil {
			if len(workflows) > dashboardRecentCount {
				workflows = workflows[:dashboardRecentCount]
			}

			msg.workflows = workflows
		}

		if executions, _, err := client.Executions().List(ctx, 1, dashboardRecentCount); err == nil {
			msg.executions = executions
		}

		return msg
	}
}

func (d dashboardModel) render(width int) string {
	title := lipgloss.NewStyle().Bold(true).Render("Dashboard")

	if d.loading && d.summary == nil {
		return lipgloss.JoinVertical(lipgloss.Left, title, dimStyle().Render("loading…"))
	}

	lines := []string{title}

	if d.err != nil {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(d.err.Error()))
	}

	if d.summary != nil {
		s := d.summary

		cards := []string{
			statCard("Workflows", fmt.Sprintf("%d (%d active)", s.TotalWorkflows, s.ActiveWorkflows)),
			statCard("Executions", fmt.Sprintf("%d (%d today)", s.TotalExecutions, s.ExecutionsToday)),
			statCard("Success rate", fmt.Sprintf("%.1f%%", s.SuccessRate)),
			statCard("Failed", fmt.Sprintf("%d", s.FailedExecutions)),
		}

		lines = append(lines, "", lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	if len(d.workflows) > 0 {
		lines = append(lines, "", dimStyle().Render("recent workflows"))

		for _, workflow := range d.workflows {
			status := "inactive"
			if workflow.IsActive {
				status = "active"
			}

			lines = append(lines, fmt.Sprintf("  %s (%s)", workflow.Name, status))
		}
	}

	if len(d.executions) > 0 {
		lines = append(lines, "", dimStyle().Render("recent executions"))

		for _, execution := range d.executions {
			lines = append(lines, fmt.Sprintf("  %s [%s]", execution.WorkflowName, execution.Status))
		}
	}

	lines = append(lines, "",
		dimStyle().Render("w workflows · e executions · c credentials · t templates · b webhooks · v variables · S settings"))

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)

	return lipgloss.NewStyle().Width(width).Render(body)
}

func statCard(label, value string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		dimStyle().Render(label),
		lipgloss.NewStyle().Bold(true).Render(value),
	)

	return panelStyle().Render(content)
}
