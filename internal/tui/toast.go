package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aipilotbyjd/n8njdfront/pkg/notify"
)

var toastColors = map[notify.Severity]lipgloss.Color{
	notify.SeveritySuccess: lipgloss.Color("10"),
	notify.SeverityError:   lipgloss.Color("9"),
	notify.SeverityWarning: lipgloss.Color("11"),
	notify.SeverityInfo:    lipgloss.Color("12"),
}

// renderToasts renders the active notifications as a stacked overlay,
// oldest first. Returns "" when nothing is visible.
func renderToasts(notifications []notify.Notification, width int) string {
	if len(notifications) == 0 {
		return ""
	}

	lines := make([]string, 0, len(notifications))

	for _, notification := range notifications {
		color, ok := toastColors[notification.Severity]
		if !ok {
			color = lipgloss.Color("12")
		}

		message := notification.Message
		if runes := []rune(message); width > 6 && len(runes) > width-4 {
			message = string(runes[:width-4]) + "…"
		}

		lines = append(lines, lipgloss.NewStyle().Foreground(color).Render("● "+message))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
