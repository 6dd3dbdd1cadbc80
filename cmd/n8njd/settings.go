package main

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"

	"github.com/aipilotbyjd/n8njdfront/pkg/guard"
)

// SettingsCommand covers the account notification switches.
func SettingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Manage account settings",
		Commands: []*cli.Command{
			notificationsCommand(),
		},
	}
}

var notificationSwitches = []string{
	"email-on-failure",
	"email-on-success",
	"weekly-summary",
	"product-updates",
	"security-alerts",
	"workflow-sharing",
}

func notificationsCommand() *cli.Command {
	flags := make([]cli.Flag, 0, len(notificationSwitches))
	for _, name := range notificationSwitches {
		flags = append(flags, &cli.BoolFlag{Name: name, Usage: "Set the " + name + " switch"})
	}

	return &cli.Command{
		Name:  "notifications",
		Usage: "Show the notification switches, or update the ones given as flags",
		Flags: flags,
		Action: run(guard.RouteSettings, func(ctx context.Context, a *app, command *cli.Command) error {
			settings, err := a.client.Notifications().Settings(ctx)
			if err != nil {
				return err
			}

			changed := false

			apply := func(name string, field *bool) {
				if command.IsSet(name) {
					*field = command.Bool(name)
					changed = true
				}
			}

			apply("email-on-failure", &settings.EmailOnFailure)
			apply("email-on-success", &settings.EmailOnSuccess)
			apply("weekly-summary", &settings.WeeklySummary)
			apply("product-updates", &settings.ProductUpdates)
			apply("security-alerts", &settings.SecurityAlerts)
			apply("workflow-sharing", &settings.WorkflowSharing)

			if changed {
				if err := a.client.Notifications().UpdateSettings(ctx, *settings); err != nil {
					return err
				}

				fmt.Println("updated")
			}

			return printJSON(settings)
		}),
	}
}
