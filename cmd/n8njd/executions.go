package main

import (
	"context"
	"fmt"
	"strconv"

	cli "github.com/urfave/cli/v3"

	"github.com/aipilotbyjd/n8njdfront/pkg/guard"
	"github.com/aipilotbyjd/n8njdfront/pkg/models"
)

// ExecutionsCommand covers the execution history plus the stop and retry
// actions.
func ExecutionsCommand() *cli.Command {
	return &cli.Command{
		Name:    "executions",
		Aliases: []string{"ex"},
		Usage:   "Inspect workflow runs",
		Commands: []*cli.Command{
			executionsListCommand(),
			executionsGetCommand(),
			executionsActionCommand("stop", "Halt a running execution"),
			executionsActionCommand("retry", "Re-run a finished execution"),
		},
	}
}

func formatDuration(ms int64) string {
	if ms <= 0 {
		return "-"
	}

	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}

	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}

func executionRows(executions []models.Execution) [][]string {
	rows := make([][]string, 0, len(executions))

	for _, execution := range executions {
		rows = append(rows, []string{
			strconv.FormatInt(execution.ID, 10),
			execution.WorkflowName,
			string(execution.Status),
			execution.Mode,
			formatTime(execution.StartedAt),
			formatDuration(execution.ExecutionTimeMS),
		})
	}

	return rows
}

func executionsListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List executions, newest first",
		Flags: []cli.Flag{
			pageFlag(),
			&cli.IntFlag{Name: "per-page", Usage: "Page size", Value: 20},
			jsonFlag(),
		},
		Action: run(guard.RouteExecutions, func(ctx context.Context, a *app, command *cli.Command) error {
			executions, page, err := a.client.Executions().List(ctx, command.Int("page"), command.Int("per-page"))
			if err != nil {
				return err
			}

			if command.Bool("json") {
				return printJSON(executions)
			}

			printTable(
				[]string{"ID", "WORKFLOW", "STATUS", "MODE", "STARTED", "DURATION"},
				executionRows(executions),
			)
			printPage(page)

			return nil
		}),
	}
}

func executionsGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show a single execution",
		ArgsUsage: "<execution-id>",
		Action: run(guard.RouteExecutions, func(ctx context.Context, a *app, command *cli.Command) error {
			id, err := idArg(command, "execution-id")
			if err != nil {
				return err
			}

			execution, err := a.client.Executions().Get(ctx, id)
			if err != nil {
				return err
			}

			return printJSON(execution)
		}),
	}
}

func executionsActionCommand(name, usage string) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<execution-id>",
		Action: run(guard.RouteExecutions, func(ctx context.Context, a *app, command *cli.Command) error {
			id, err := idArg(command, "execution-id")
			if err != nil {
				return err
			}

			executions := a.client.Executions()

			if name == "stop" {
				err = executions.Stop(ctx, id)
			} else {
				err = executions.Retry(ctx, id)
			}

			if err != nil {
				return err
			}

			fmt.Println("requested")

			return nil
		}),
	}
}
