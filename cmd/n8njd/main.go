package main

import (
	"context"
	"os"

	"github.com/aipilotbyjd/n8njdfront/pkg/log"
	cli "github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:                  "n8njd",
		Usage:                 "Administer the workflow automation platform from the terminal",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "Base URL of the platform API",
				Sources: cli.EnvVars("N8NJD_API_URL"),
			},
			&cli.StringFlag{
				Name:    "app-name",
				Usage:   "Installation display name",
				Sources: cli.EnvVars("N8NJD_APP_NAME"),
			},
			&cli.StringFlag{
				Name:    "home",
				Usage:   "Directory holding the persisted session",
				Sources: cli.EnvVars("N8NJD_HOME"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:    "trace",
				Usage:   "Export OTLP traces for API requests",
				Sources: cli.EnvVars("N8NJD_TRACE"),
			},
		},
		Commands: []*cli.Command{
			AuthCommand(),
			WorkflowsCommand(),
			ExecutionsCommand(),
			CredentialsCommand(),
			TemplatesCommand(),
			WebhooksCommand(),
			VariablesCommand(),
			SettingsCommand(),
			DashboardCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.WithModule("main").Error("Command failed", "error", err)
		os.Exit(1)
	}
}
