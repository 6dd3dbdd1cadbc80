package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	cli "github.com/urfave/cli/v3"

	"github.com/aipilotbyjd/n8njdfront/internal/tui"
	"github.com/aipilotbyjd/n8njdfront/pkg/api"
	"github.com/aipilotbyjd/n8njdfront/pkg/guard"
	"github.com/aipilotbyjd/n8njdfront/pkg/models"
)

// WorkflowsCommand covers the workflow lifecycle: listing, the editor,
// activation, duplication, manual runs, and saved revisions.
func WorkflowsCommand() *cli.Command {
	return &cli.Command{
		Name:    "workflows",
		Aliases: []string{"wf"},
		Usage:   "Manage workflows",
		Commands: []*cli.Command{
			workflowsListCommand(),
			workflowsGetCommand(),
			workflowsCreateCommand(),
			workflowsDeleteCommand(),
			workflowsToggleCommand("activate", "Turn a workflow on"),
			workflowsToggleCommand("deactivate", "Turn a workflow off"),
			workflowsDuplicateCommand(),
			workflowsExecuteCommand(),
			workflowsEditCommand(),
			versionsCommand(),
		},
	}
}

func idArg(command *cli.Command, usage string) (int64, error) {
	raw := command.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("missing argument: %s", usage)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", usage, raw, err)
	}

	return id, nil
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the raw record as JSON",
	}
}

func pageFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "page",
		Usage: "Page to fetch",
		Value: 1,
	}
}

func workflowRows(workflows []models.Workflow) [][]string {
	rows := make([][]string, 0, len(workflows))

	for _, workflow := range workflows {
		rows = append(rows, []string{
			strconv.FormatInt(workflow.ID, 10),
			workflow.Name,
			formatActive(workflow.IsActive),
			strconv.Itoa(len(workflow.Nodes)),
			strconv.Itoa(workflow.ExecutionCount),
			workflow.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}

	return rows
}

func workflowsListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List workflows",
		Flags: []cli.Flag{pageFlag(), jsonFlag()},
		Action: run(guard.RouteWorkflows, func(ctx context.Context, a *app, command *cli.Command) error {
			workflows, page, err := a.client.Workflows().List(ctx, command.Int("page"))
			if err != nil {
				return err
			}

			if command.Bool("json") {
				return printJSON(workflows)
			}

			printTable(
				[]string{"ID", "NAME", "STATUS", "NODES", "RUNS", "UPDATED"},
				workflowRows(workflows),
			)
			printPage(page)

			return nil
		}),
	}
}

func workflowsGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show a workflow with its full graph",
		ArgsUsage: "<workflow-id>",
		Action: run(guard.RouteWorkflows, func(ctx context.Context, a *app, command *cli.Command) error {
			id, err := idArg(command, "workflow-id")
			if err != nil {
				return err
			}

			workflow, err := a.client.Workflows().Get(ctx, id)
			if err != nil {
				return err
			}

			return printJSON(workflow)
		}),
	}
}

func workflowsCreateCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a workflow",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Workflow name", Required: true},
			&cli.StringFlag{Name: "description", Usage: "Workflow description"},
		},
		Action: run(guard.RouteWorkflows, func(ctx context.Context, a *app, command *cli.Command) error {
			workflow, err := a.client.Workflows().Create(ctx, api.WorkflowRequest{
				Name:        command.String("name"),
				Description: command.String("description"),
			})
			if err != nil {
				return err
			}

			fmt.Printf("created workflow %d\n", workflow.ID)

			return nil
		}),
	}
}

func workflowsDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a workflow",
		ArgsUsage: "<workflow-id>",
		Flags:     []cli.Flag{yesFlag()},
		Action: run(guard.RouteWorkflows, func(ctx context.Context, a *app, command *cli.Command) error {
			id, err := idArg(command, "workflow-id")
			if err != nil {
				return err
			}

			if !confirm(command, fmt.Sprintf("Delete workflow %d?", id))() {
				return nil
			}

			if err := a.client.Workflows().Delete(ctx, id); err != nil {
				return err
			}

			fmt.Println("deleted")

			return nil
		}),
	}
}

func workflowsToggleCommand(name, usage string) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<workflow-id>",
		Action: run(guard.RouteWorkflows, func(ctx context.Context, a *app, command *cli.Command) error {
			id, err := idArg(command, "workflow-id")
			if err != nil {
				return err
			}

			workflows := a.client.Workflows()

			if name == "activate" {
				err = workflows.Activate(ctx, id)
			} else {
				err = workflows.Deactivate(ctx, id)
			}

			if err != nil {
				return err
			}

			fmt.Println(name + "d")

			return nil
		}),
	}
}

func workflowsDuplicateCommand() *cli.Command {
	return &cli.Command{
		Name:      "duplicate",
		Usage:     "Clone a workflow server-side",
		ArgsUsage: "<workflow-id>",
		Action: run(guard.RouteWorkflows, func(ctx context.Context, a *app, command *cli.Command) error {
			id, err := idArg(command, "workflow-id")
			if err != nil {
				return err
			}

			clone, err := a.client.Workflows().Duplicate(ctx, id)
			if err != nil {
				return err
			}

			fmt.Printf("created workflow %d\n", clone.ID)

			return nil
		}),
	}
}

func workflowsExecuteCommand() *cli.Command {
	return &cli.Command{
		Name:      "execute",
		Usage:     "Trigger a manual run",
		ArgsUsage: "<workflow-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Usage: "Input payload as a JSON object"},
		},
		Action: run(guard.RouteWorkflows, func(ctx context.Context, a *app, command *cli.Command) error {
			id, err := idArg(command, "workflow-id")
			if err != nil {
				return err
			}

			var input map[string]any

			if raw := command.String("input"); raw != "" {
				if err := json.Unmarshal([]byte(raw), &input); err != nil {
					return fmt.Errorf("parse --input: %w", err)
				}
			}

			if err := a.client.Workflows().Execute(ctx, id, input); err != nil {
				return err
			}

			fmt.Println("execution started")

			return nil
		}),
	}
}

func workflowsEditCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Open the interactive graph editor",
		ArgsUsage: "[workflow-id]",
		Action: run(guard.RouteWorkflows, func(ctx context.Context, a *app, command *cli.Command) error {
			var workflowID int64

			if command.Args().First() != "" {
				id, err := idArg(command, "workflow-id")
				if err != nil {
					return err
				}

				workflowID = id
			}

			return tui.Run(ctx, a.tuiDeps(), tui.Options{
				StartRoute: guard.RouteWorkflows,
				EditorID:   workflowID,
				OpenEditor: true,
			})
		}),
	}
}

func versionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "versions",
		Usage: "Manage saved workflow revisions",
		Commands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "List the revisions of a workflow",
				ArgsUsage: "<workflow-id>",
				Action: run(guard.RouteWorkflows, func(ctx context.Context, a *app, command *cli.Command) error {
					id, err := idArg(command, "workflow-id")
					if err != nil {
						return err
					}

					versions, err := a.client.Versions().List(ctx, id)
					if err != nil {
						return err
					}

					rows := make([][]string, 0, len(versions))
					for _, version := range versions {
						rows = append(rows, []string{
							strconv.FormatInt(version.ID, 10),
							strconv.Itoa(version.Version),
							version.Comment,
							version.CreatedAt.Format("2006-01-02 15:04"),
						})
					}

					printTable([]string{"ID", "VERSION", "COMMENT", "CREATED"}, rows)

					return nil
				}),
			},
			{
				Name:      "create",
				Usage:     "Snapshot the current graph as a revision",
				ArgsUsage: "<workflow-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "comment", Usage: "Revision comment"},
				},
				Action: run(guard.RouteWorkflows, func(ctx context.Context, a *app, command *cli.Command) error {
					id, err := idArg(command, "workflow-id")
					if err != nil {
						return err
					}

					version, err := a.client.Versions().Create(ctx, id, command.String("comment"))
					if err != nil {
						return err
					}

					fmt.Printf("saved version %d\n", version.Version)

					return nil
				}),
			},
			{
				Name:      "restore",
				Usage:     "Replace the working graph with a saved revision",
				ArgsUsage: "<workflow-id> <version-id>",
				Flags:     []cli.Flag{yesFlag()},
				Action: run(guard.RouteWorkflows, func(ctx context.Context, a *app, command *cli.Command) error {
					if command.Args().Len() < 2 {
						return fmt.Errorf("usage: n8njd workflows versions restore <workflow-id> <version-id>")
					}

					workflowID, err := strconv.ParseInt(command.Args().Get(0), 10, 64)
					if err != nil {
						return fmt.Errorf("invalid workflow-id: %w", err)
					}

					versionID, err := strconv.ParseInt(command.Args().Get(1), 10, 64)
					if err != nil {
						return fmt.Errorf("invalid version-id: %w", err)
					}

					if !confirm(command, "Overwrite the working graph with this revision?")() {
						return nil
					}

					if err := a.client.Versions().Restore(ctx, workflowID, versionID); err != nil {
						return err
					}

					fmt.Println("restored")

					return nil
				}),
			},
		},
	}
}
