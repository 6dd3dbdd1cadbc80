package main

import (
	"context"

	cli "github.com/urfave/cli/v3"

	"github.com/aipilotbyjd/n8njdfront/internal/tui"
	"github.com/aipilotbyjd/n8njdfront/pkg/guard"
)

// DashboardCommand launches the interactive console. Without a session the
// console opens on the login screen instead of refusing to start.
func DashboardCommand() *cli.Command {
	return &cli.Command{
		Name:    "dashboard",
		Aliases: []string{"ui"},
		Usage:   "Open the interactive console",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "summary", Usage: "Print the dashboard rollup and exit"},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			a, err := newApp(ctx, command)
			if err != nil {
				return err
			}

			defer a.close(ctx)

			if command.Bool("summary") {
				if err := a.gate(guard.RouteDashboard); err != nil {
					return err
				}

				summary, err := a.client.Analytics().Summary(ctx)
				if err != nil {
					return err
				}

				return printJSON(summary)
			}

			return tui.Run(ctx, a.tuiDeps(), tui.Options{StartRoute: guard.RouteDashboard})
		},
	}
}
