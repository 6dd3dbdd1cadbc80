package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"

	"github.com/aipilotbyjd/n8njdfront/internal/tui"
	"github.com/aipilotbyjd/n8njdfront/pkg/api"
	"github.com/aipilotbyjd/n8njdfront/pkg/config"
	"github.com/aipilotbyjd/n8njdfront/pkg/guard"
	"github.com/aipilotbyjd/n8njdfront/pkg/log"
	"github.com/aipilotbyjd/n8njdfront/pkg/notify"
	"github.com/aipilotbyjd/n8njdfront/pkg/otelhelper"
	"github.com/aipilotbyjd/n8njdfront/pkg/session"
)

var (
	errNotLoggedIn     = errors.New("not logged in: run `n8njd auth login` first")
	errAlreadyLoggedIn = errors.New("already logged in: run `n8njd auth logout` first")
)

// app bundles the pieces every command needs.
type app struct {
	cfg      *config.Config
	sessions *session.Store
	client   *api.Client
	bus      *notify.Bus
	logger   *slog.Logger

	shutdown func(context.Context) error
}

func newApp(ctx context.Context, command *cli.Command) (*app, error) {
	log.Setup(command.String("log-level"))

	logger := log.WithModule("n8njd")

	cfg, err := config.New(command.String("api-url"), command.String("app-name"), command.String("home"))
	if err != nil {
		return nil, fmt.Errorf("resolve config: %w", err)
	}

	sessions := session.NewStore(cfg.Home)

	var opts []api.Option

	shutdown := func(context.Context) error { return nil }

	if command.Bool("trace") {
		tracer, stop, err := otelhelper.NewTracer(ctx, "n8njd")
		if err != nil {
			return nil, fmt.Errorf("init tracer: %w", err)
		}

		opts = append(opts, api.WithTracer(tracer))
		shutdown = stop
	}

	return &app{
		cfg:      cfg,
		sessions: sessions,
		client:   api.NewClient(cfg.APIURL, sessions, opts...),
		bus:      notify.NewBus(logger),
		logger:   logger,
		shutdown: shutdown,
	}, nil
}

func (a *app) close(ctx context.Context) {
	if err := a.bus.Close(); err != nil {
		a.logger.Error("Failed to close notification bus", "error", err)
	}

	if err := a.shutdown(ctx); err != nil {
		a.logger.ErrorContext(ctx, "Failed to shut down tracer", "error", err)
	}
}

// tuiDeps packages the app's pieces for the interactive console.
func (a *app) tuiDeps() tui.Deps {
	return tui.Deps{
		Config:   a.cfg,
		Client:   a.client,
		Sessions: a.sessions,
		Bus:      a.bus,
		Logger:   a.logger,
	}
}

// gate applies the route guard before a command runs, the same check the
// interactive router performs on navigation.
func (a *app) gate(route string) error {
	switch guard.Decide(route, a.sessions.Authenticated()) {
	case guard.RedirectLogin:
		return errNotLoggedIn
	case guard.RedirectLanding:
		return errAlreadyLoggedIn
	default:
		return nil
	}
}

// notifyCtx carries the notification bus, so shared controller code can
// publish outcomes from non-interactive commands too.
func (a *app) notifyCtx(ctx context.Context) context.Context {
	return notify.WithBus(ctx, a.bus)
}

// confirm prompts on stdin before a destructive action. The --yes flag
// skips the prompt.
func confirm(command *cli.Command, prompt string) func() bool {
	return func() bool {
		if command.Bool("yes") {
			return true
		}

		fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)

		reader := bufio.NewReader(os.Stdin)

		answer, err := reader.ReadString('\n')
		if err != nil {
			return false
		}

		answer = strings.ToLower(strings.TrimSpace(answer))

		return answer == "y" || answer == "yes"
	}
}

func yesFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Skip the confirmation prompt",
	}
}

// run wraps a command action with app setup and teardown.
func run(route string, action func(ctx context.Context, a *app, command *cli.Command) error) func(context.Context, *cli.Command) error {
	return func(ctx context.Context, command *cli.Command) error {
		a, err := newApp(ctx, command)
		if err != nil {
			return err
		}

		defer a.close(ctx)

		if route != "" {
			if err := a.gate(route); err != nil {
				return err
			}
		}

		return action(a.notifyCtx(ctx), a, command)
	}
}
