package main

import (
	"context"
	"fmt"
	"strconv"

	cli "github.com/urfave/cli/v3"

	"github.com/aipilotbyjd/n8njdfront/pkg/api"
	"github.com/aipilotbyjd/n8njdfront/pkg/guard"
)

// TemplatesCommand covers the workflow template catalog.
func TemplatesCommand() *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: "Browse and use workflow templates",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List templates",
				Flags: []cli.Flag{pageFlag(), jsonFlag()},
				Action: run(guard.RouteTemplates, func(ctx context.Context, a *app, command *cli.Command) error {
					templates, page, err := a.client.Templates().List(ctx, command.Int("page"), 0)
					if err != nil {
						return err
					}

					if command.Bool("json") {
						return printJSON(templates)
					}

					rows := make([][]string, 0, len(templates))
					for _, template := range templates {
						rows = append(rows, []string{
							strconv.FormatInt(template.ID, 10),
							template.Name,
							strconv.Itoa(template.Nodes),
							strconv.Itoa(template.UsageCount),
						})
					}

					printTable([]string{"ID", "NAME", "NODES", "USED"}, rows)
					printPage(page)

					return nil
				}),
			},
			{
				Name:      "use",
				Usage:     "Instantiate a template as a new workflow",
				ArgsUsage: "<template-id>",
				Action: run(guard.RouteTemplates, func(ctx context.Context, a *app, command *cli.Command) error {
					id, err := idArg(command, "template-id")
					if err != nil {
						return err
					}

					workflow, err := a.client.Templates().Use(ctx, id)
					if err != nil {
						return err
					}

					fmt.Printf("created workflow %d\n", workflow.ID)

					return nil
				}),
			},
		},
	}
}

// WebhooksCommand covers inbound trigger endpoints.
func WebhooksCommand() *cli.Command {
	return &cli.Command{
		Name:  "webhooks",
		Usage: "Manage inbound webhook triggers",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List webhooks",
				Flags: []cli.Flag{jsonFlag()},
				Action: run(guard.RouteWebhooks, func(ctx context.Context, a *app, command *cli.Command) error {
					webhooks, err := a.client.Webhooks().List(ctx)
					if err != nil {
						return err
					}

					if command.Bool("json") {
						return printJSON(webhooks)
					}

					rows := make([][]string, 0, len(webhooks))
					for _, webhook := range webhooks {
						rows = append(rows, []string{
							strconv.FormatInt(webhook.ID, 10),
							strconv.FormatInt(webhook.WorkflowID, 10),
							webhook.Method,
							webhook.Path,
							strconv.Itoa(webhook.TriggerCount),
						})
					}

					printTable([]string{"ID", "WORKFLOW", "METHOD", "PATH", "TRIGGERED"}, rows)

					return nil
				}),
			},
			{
				Name:  "create",
				Usage: "Register a webhook for a workflow",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "workflow", Usage: "Workflow to trigger", Required: true},
					&cli.StringFlag{Name: "path", Usage: "Endpoint path", Required: true},
					&cli.StringFlag{Name: "method", Usage: "HTTP method", Value: "POST"},
				},
				Action: run(guard.RouteWebhooks, func(ctx context.Context, a *app, command *cli.Command) error {
					webhook, err := a.client.Webhooks().Create(ctx, api.WebhookRequest{
						WorkflowID: command.Int64("workflow"),
						Path:       command.String("path"),
						Method:     command.String("method"),
					})
					if err != nil {
						return err
					}

					fmt.Printf("created webhook %d\n", webhook.ID)

					if webhook.URL != "" {
						fmt.Println(webhook.URL)
					}

					return nil
				}),
			},
			{
				Name:      "delete",
				Usage:     "Delete a webhook",
				ArgsUsage: "<webhook-id>",
				Flags:     []cli.Flag{yesFlag()},
				Action: run(guard.RouteWebhooks, func(ctx context.Context, a *app, command *cli.Command) error {
					id, err := idArg(command, "webhook-id")
					if err != nil {
						return err
					}

					if !confirm(command, fmt.Sprintf("Delete webhook %d?", id))() {
						return nil
					}

					if err := a.client.Webhooks().Delete(ctx, id); err != nil {
						return err
					}

					fmt.Println("deleted")

					return nil
				}),
			},
			{
				Name:      "test",
				Usage:     "Fire a sample payload at the webhook's workflow",
				ArgsUsage: "<webhook-id>",
				Action: run(guard.RouteWebhooks, func(ctx context.Context, a *app, command *cli.Command) error {
					id, err := idArg(command, "webhook-id")
					if err != nil {
						return err
					}

					if err := a.client.Webhooks().Test(ctx, id); err != nil {
						return err
					}

					fmt.Println("test fired")

					return nil
				}),
			},
		},
	}
}

// VariablesCommand covers the key/value settings, global or scoped to a
// workflow.
func VariablesCommand() *cli.Command {
	return &cli.Command{
		Name:    "variables",
		Aliases: []string{"vars"},
		Usage:   "Manage environment variables",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List variables",
				Flags: []cli.Flag{jsonFlag()},
				Action: run(guard.RouteVariables, func(ctx context.Context, a *app, command *cli.Command) error {
					variables, err := a.client.Variables().List(ctx)
					if err != nil {
						return err
					}

					if command.Bool("json") {
						return printJSON(variables)
					}

					rows := make([][]string, 0, len(variables))
					for _, variable := range variables {
						scope := "global"
						if variable.WorkflowID != nil {
							scope = "workflow " + strconv.FormatInt(*variable.WorkflowID, 10)
						}

						rows = append(rows, []string{
							strconv.FormatInt(variable.ID, 10),
							variable.Key,
							variable.Value,
							scope,
						})
					}

					printTable([]string{"ID", "KEY", "VALUE", "SCOPE"}, rows)

					return nil
				}),
			},
			{
				Name:      "set",
				Usage:     "Create a variable, or update it when --id is given",
				ArgsUsage: "<key> <value>",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Usage: "Variable to update instead of creating"},
					&cli.Int64Flag{Name: "workflow", Usage: "Scope the variable to a workflow"},
				},
				Action: run(guard.RouteVariables, func(ctx context.Context, a *app, command *cli.Command) error {
					if command.Args().Len() < 2 {
						return fmt.Errorf("usage: n8njd variables set <key> <value>")
					}

					req := api.VariableRequest{
						Key:   command.Args().Get(0),
						Value: command.Args().Get(1),
					}

					if workflowID := command.Int64("workflow"); workflowID != 0 {
						req.WorkflowID = &workflowID
					}

					if id := command.Int64("id"); id != 0 {
						if _, err := a.client.Variables().Update(ctx, id, req); err != nil {
							return err
						}

						fmt.Println("updated")

						return nil
					}

					variable, err := a.client.Variables().Create(ctx, req)
					if err != nil {
						return err
					}

					fmt.Printf("created variable %d\n", variable.ID)

					return nil
				}),
			},
			{
				Name:      "delete",
				Usage:     "Delete a variable",
				ArgsUsage: "<variable-id>",
				Flags:     []cli.Flag{yesFlag()},
				Action: run(guard.RouteVariables, func(ctx context.Context, a *app, command *cli.Command) error {
					id, err := idArg(command, "variable-id")
					if err != nil {
						return err
					}

					if !confirm(command, fmt.Sprintf("Delete variable %d?", id))() {
						return nil
					}

					if err := a.client.Variables().Delete(ctx, id); err != nil {
						return err
					}

					fmt.Println("deleted")

					return nil
				}),
			},
		},
	}
}
