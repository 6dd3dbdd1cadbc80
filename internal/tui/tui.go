// Package tui implements the interactive console: a routed set of views
// over the same controllers and services the plain subcommands use.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aipilotbyjd/n8njdfront/pkg/api"
	"github.com/aipilotbyjd/n8njdfront/pkg/config"
	"github.com/aipilotbyjd/n8njdfront/pkg/guard"
	"github.com/aipilotbyjd/n8njdfront/pkg/models"
	"github.com/aipilotbyjd/n8njdfront/pkg/notify"
	"github.com/aipilotbyjd/n8njdfront/pkg/session"
)

// Deps are the application pieces the console runs on.
type Deps struct {
	Config   *config.Config
	Client   *api.Client
	Sessions *session.Store
	Bus      *notify.Bus
	Logger   *slog.Logger
}

// Options select where the console opens.
type Options struct {
	StartRoute string

	// OpenEditor jumps straight into the graph editor. EditorID is the
	// workflow to load; zero starts a blank graph.
	OpenEditor bool
	EditorID   int64
}

type tickMsg struct{}

// Run starts the console and blocks until it exits.
func Run(ctx context.Context, deps Deps, opts Options) error {
	ctx = notify.WithBus(ctx, deps.Bus)

	center := notify.NewCenter()

	go func() {
		if err := center.Run(ctx, deps.Bus); err != nil {
			deps.Logger.ErrorContext(ctx, "Notification stream closed", "error", err)
		}
	}()

	m := NewModel(ctx, deps, opts, center)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()

	return err
}

// Model is the root console state: the active route plus one sub-model per
// view.
type Model struct {
	ctx  context.Context
	deps Deps
	opts Options

	route  string
	center *notify.Center

	login     loginModel
	dashboard dashboardModel
	settings  settingsModel

	workflows   *resourceModel[models.Workflow]
	executions  *resourceModel[models.Execution]
	credentials *resourceModel[models.Credential]
	templates   *resourceModel[models.Template]
	webhooks    *resourceModel[models.Webhook]
	variables   *resourceModel[models.Variable]

	editor   *editorModel
	credForm *credFormModel
	confirm  *confirmModel

	width  int
	height int

	help help.Model
	keys keyMap

	// crash holds the recovered panic text; the view offers a reload
	// instead of taking the whole terminal down. A pointer, so a panic
	// caught during rendering survives into the next update.
	crash *crashState
}

type crashState struct {
	message string
}

func NewModel(ctx context.Context, deps Deps, opts Options, center *notify.Center) Model {
	m := Model{
		ctx:       ctx,
		deps:      deps,
		opts:      opts,
		center:    center,
		crash:     &crashState{},
		login:     newLoginModel(),
		dashboard: newDashboardModel(),
		settings:  newSettingsModel(),
		help:      help.New(),
		keys:      defaultKeyMap(),
	}

	m.workflows = newWorkflowList(deps.Client)
	m.executions = newExecutionList(deps.Client)
	m.credentials = newCredentialList(deps.Client)
	m.templates = newTemplateList(deps.Client)
	m.webhooks = newWebhookList(deps.Client)
	m.variables = newVariableList(deps.Client)

	start := opts.StartRoute
	if start == "" {
		start = guard.RouteDashboard
	}

	m.route = m.resolve(start)

	return m
}

// resolve applies the route guard and returns the route actually shown.
func (m *Model) resolve(route string) string {
	decision := guard.Decide(route, m.deps.Sessions.Authenticated())

	target := decision.Target(route)
	if target == guard.RouteLanding {
		target = guard.RouteDashboard
	}

	return target
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick(), m.enterCmd(m.route)}

	if m.opts.OpenEditor && m.deps.Sessions.Authenticated() {
		cmds = append(cmds, openEditorCmd(m.ctx, m.deps.Client, m.opts.EditorID))
	}

	return tea.Batch(cmds...)
}

func tick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

// enterCmd is the mount-time load for a route.
func (m Model) enterCmd(route string) tea.Cmd {
	switch route {
	case guard.RouteDashboard:
		return fetchDashboardCmd(m.ctx, m.deps.Client)
	case guard.RouteSettings:
		return fetchSettingsCmd(m.ctx, m.deps.Client)
	case guard.RouteWorkflows:
		return m.workflows.loadCmd(m.ctx)
	case guard.RouteExecutions:
		return m.executions.loadCmd(m.ctx)
	case guard.RouteCredentials:
		return m.credentials.loadCmd(m.ctx)
	case guard.RouteTemplates:
		return m.templates.loadCmd(m.ctx)
	case guard.RouteWebhooks:
		return m.webhooks.loadCmd(m.ctx)
	case guard.RouteVariables:
		return m.variables.loadCmd(m.ctx)
	}

	return nil
}

// navigate re-guards and switches the active route. The previous list view
// is invalidated so a late response cannot repaint it.
func (m *Model) navigate(route string) tea.Cmd {
	if current := m.active(); current != nil {
		current.pagerInvalidate()
	}

	m.editor = nil
	m.credForm = nil
	m.confirm = nil
	m.settings.password = nil

	m.route = m.resolve(route)

	return m.enterCmd(m.route)
}

// active returns the list view for the current route, nil for the other
// views.
func (m *Model) active() resourceView {
	switch m.route {
	case guard.RouteWorkflows:
		return m.workflows
	case guard.RouteExecutions:
		return m.executions
	case guard.RouteCredentials:
		return m.credentials
	case guard.RouteTemplates:
		return m.templates
	case guard.RouteWebhooks:
		return m.webhooks
	case guard.RouteVariables:
		return m.variables
	}

	return nil
}

func (m Model) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.crash.message = fmt.Sprintf("%v", r)
			model, cmd = m, nil
		}
	}()

	if m.crash.message != "" {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "r":
				fresh := NewModel(m.ctx, m.deps, Options{StartRoute: m.route}, m.center)
				fresh.width, fresh.height = m.width, m.height

				return fresh, fresh.Init()
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case tickMsg:
		// Active() prunes expired toasts as a side effect.
		m.center.Active()

		return m, tick()

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case dashboardDataMsg:
		m.dashboard.apply(msg)

		return m, nil

	case settingsMsg:
		m.settings.apply(msg)

		return m, nil

	case settingsSavedMsg:
		m.settings.busy = false

		if msg.err != nil {
			notify.Error(m.ctx, msg.err.Error())
		} else {
			notify.Success(m.ctx, "settings saved")
		}

		return m, nil

	case passwordSavedMsg:
		if form := m.settings.password; form != nil {
			form.busy = false
		}

		if msg.err != nil {
			notify.Error(m.ctx, msg.err.Error())
		} else {
			m.settings.password = nil

			notify.Success(m.ctx, "Password changed")
		}

		return m, nil

	case fetchedMsg, mutatedMsg:
		// Pager state already moved; the render picks it up.
		return m, nil

	case editorOpenedMsg:
		if msg.err != nil {
			notify.Error(m.ctx, msg.err.Error())

			return m, nil
		}

		m.editor = msg.editor

		return m, nil

	case editorSavedMsg:
		if msg.err != nil {
			if m.editor != nil {
				m.editor.busy = false
			}

			notify.Error(m.ctx, msg.err.Error())

			return m, nil
		}

		m.editor = nil
		notify.Success(m.ctx, "workflow saved")

		return m, m.workflows.refreshCmd(m.ctx)

	case credSavedMsg:
		if msg.err == nil {
			m.credForm = nil
			notify.Success(m.ctx, "credential saved")

			return m, m.credentials.refreshCmd(m.ctx)
		}

		if m.credForm != nil {
			m.credForm.busy = false
		}

		notify.Error(m.ctx, msg.err.Error())

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal layers swallow input first.
	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}

	if m.editor != nil {
		return m.handleEditorKey(msg)
	}

	if m.credForm != nil {
		return m.handleCredFormKey(msg)
	}

	if m.route == guard.RouteLogin {
		return m.handleLoginKey(msg)
	}

	if m.route == guard.RouteSettings && m.settings.password != nil {
		return m.handlePasswordKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.help.ShowAll = !m.help.ShowAll

		return m, nil

	case "g":
		return m, m.navigate(guard.RouteDashboard)
	case "w":
		return m, m.navigate(guard.RouteWorkflows)
	case "e":
		return m, m.navigate(guard.RouteExecutions)
	case "c":
		return m, m.navigate(guard.RouteCredentials)
	case "t":
		return m, m.navigate(guard.RouteTemplates)
	case "b":
		return m, m.navigate(guard.RouteWebhooks)
	case "v":
		return m, m.navigate(guard.RouteVariables)
	case "S":
		return m, m.navigate(guard.RouteSettings)

	case "L":
		if err := m.deps.Sessions.Clear(); err != nil {
			notify.Error(m.ctx, err.Error())
		}

		return m, m.navigate(guard.RouteDashboard)
	}

	if m.route == guard.RouteSettings {
		return m.handleSettingsKey(msg)
	}

	if view := m.active(); view != nil {
		return m.handleListKey(view, msg)
	}

	return m, nil
}

func (m Model) View() (view string) {
	// Rendering panics get the same reload screen as update panics; the
	// shared crash state makes the next update see them too.
	defer func() {
		if r := recover(); r != nil {
			m.crash.message = fmt.Sprintf("%v", r)
			view = m.renderCrash()
		}
	}()

	if m.crash.message != "" {
		return m.renderCrash()
	}

	if m.width == 0 || m.height == 0 {
		return "Loading…"
	}

	var body string

	switch {
	case m.confirm != nil:
		body = m.confirm.render(m.width)
	case m.editor != nil:
		body = m.editor.render(m.width, m.bodyHeight())
	case m.credForm != nil:
		body = m.credForm.render(m.width)
	case m.route == guard.RouteLogin:
		body = m.login.render(m.width)
	case m.route == guard.RouteDashboard:
		body = m.dashboard.render(m.width)
	case m.route == guard.RouteSettings:
		body = m.settings.render(m.width)
	default:
		if view := m.active(); view != nil {
			body = view.render(m.width, m.bodyHeight())
		}
	}

	header := m.renderHeader()
	toasts := renderToasts(m.center.Active(), m.width)
	footer := footerStyle().Render(m.help.View(m.keys))

	if toasts != "" {
		return lipgloss.JoinVertical(lipgloss.Left, header, toasts, body, footer)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) bodyHeight() int {
	h := m.height - 4
	if h < 3 {
		h = 3
	}

	return h
}

func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Render(m.deps.Config.AppName)

	where := dimStyle().Render(m.route)

	who := "not logged in"
	if sess, err := m.deps.Sessions.Load(); err == nil && sess.User != nil {
		who = sess.User.Email
	}

	return title + "  " + where + "  " + dimStyle().Render(who)
}

func (m Model) renderCrash() string {
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render("Something went wrong"),
		"",
		m.crash.message,
		"",
		dimStyle().Render("r reload · q quit"),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func dimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
}

func footerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
}

func panelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
}
