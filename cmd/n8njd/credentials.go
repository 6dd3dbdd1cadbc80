package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	cli "github.com/urfave/cli/v3"

	"github.com/aipilotbyjd/n8njdfront/pkg/api"
	"github.com/aipilotbyjd/n8njdfront/pkg/credentials"
	"github.com/aipilotbyjd/n8njdfront/pkg/guard"
)

// CredentialsCommand covers the stored secret bundles. Typed payloads are
// assembled through the field registry; --data bypasses it for types the
// registry does not know.
func CredentialsCommand() *cli.Command {
	return &cli.Command{
		Name:    "credentials",
		Aliases: []string{"creds"},
		Usage:   "Manage credentials",
		Commands: []*cli.Command{
			credentialsListCommand(),
			credentialsCreateCommand(),
			credentialsUpdateCommand(),
			credentialsDeleteCommand(),
			credentialsTestCommand(),
			credentialsTypesCommand(),
		},
	}
}

// credentialPayload assembles the data payload from repeated --field k=v
// flags, or from --data when the type is unknown to the registry.
func credentialPayload(command *cli.Command, registry *credentials.Registry, typeTag string) (map[string]any, error) {
	if raw := command.String("data"); raw != "" {
		editor := credentials.NewRawEditor(nil)
		editor.SetText(raw)

		if !editor.Valid() {
			return nil, fmt.Errorf("--data is not a JSON object")
		}

		return editor.Value(), nil
	}

	values := map[string]string{}

	for _, pair := range command.StringSlice("field") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid --field %q, expected key=value", pair)
		}

		values[key] = value
	}

	if _, known := registry.Lookup(typeTag); !known {
		payload := make(map[string]any, len(values))
		for key, value := range values {
			payload[key] = value
		}

		return payload, nil
	}

	if missing := registry.MissingRequired(typeTag, values); len(missing) > 0 {
		return nil, fmt.Errorf("missing required fields for %s: %s", typeTag, strings.Join(missing, ", "))
	}

	payload := registry.BuildPayload(typeTag, values)

	if err := registry.ValidatePayload(typeTag, payload); err != nil {
		return nil, err
	}

	return payload, nil
}

func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "Credential name", Required: true},
		&cli.StringFlag{Name: "type", Usage: "Credential type tag", Required: true},
		&cli.StringSliceFlag{Name: "field", Usage: "Payload field as key=value (repeatable)"},
		&cli.StringFlag{Name: "data", Usage: "Raw payload as a JSON object"},
	}
}

func credentialsListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List credentials",
		Flags: []cli.Flag{jsonFlag()},
		Action: run(guard.RouteCredentials, func(ctx context.Context, a *app, command *cli.Command) error {
			list, err := a.client.Credentials().List(ctx)
			if err != nil {
				return err
			}

			if command.Bool("json") {
				return printJSON(list)
			}

			rows := make([][]string, 0, len(list))
			for _, credential := range list {
				rows = append(rows, []string{
					strconv.FormatInt(credential.ID, 10),
					credential.Name,
					credential.Type,
					credential.CreatedAt.Format("2006-01-02 15:04"),
				})
			}

			printTable([]string{"ID", "NAME", "TYPE", "CREATED"}, rows)

			return nil
		}),
	}
}

func credentialsCreateCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Store a new credential",
		Flags: credentialFlags(),
		Action: run(guard.RouteCredentials, func(ctx context.Context, a *app, command *cli.Command) error {
			registry := credentials.NewRegistry()
			typeTag := command.String("type")

			payload, err := credentialPayload(command, registry, typeTag)
			if err != nil {
				return err
			}

			credential, err := a.client.Credentials().Create(ctx, api.CredentialRequest{
				Name: command.String("name"),
				Type: typeTag,
				Data: payload,
			})
			if err != nil {
				return err
			}

			fmt.Printf("created credential %d\n", credential.ID)

			return nil
		}),
	}
}

func credentialsUpdateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Replace a credential's name, type, and payload",
		ArgsUsage: "<credential-id>",
		Flags:     credentialFlags(),
		Action: run(guard.RouteCredentials, func(ctx context.Context, a *app, command *cli.Command) error {
			id, err := idArg(command, "credential-id")
			if err != nil {
				return err
			}

			registry := credentials.NewRegistry()
			typeTag := command.String("type")

			payload, err := credentialPayload(command, registry, typeTag)
			if err != nil {
				return err
			}

			if _, err := a.client.Credentials().Update(ctx, id, api.CredentialRequest{
				Name: command.String("name"),
				Type: typeTag,
				Data: payload,
			}); err != nil {
				return err
			}

			fmt.Println("updated")

			return nil
		}),
	}
}

func credentialsDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a credential",
		ArgsUsage: "<credential-id>",
		Flags:     []cli.Flag{yesFlag()},
		Action: run(guard.RouteCredentials, func(ctx context.Context, a *app, command *cli.Command) error {
			id, err := idArg(command, "credential-id")
			if err != nil {
				return err
			}

			if !confirm(command, fmt.Sprintf("Delete credential %d?", id))() {
				return nil
			}

			if err := a.client.Credentials().Delete(ctx, id); err != nil {
				return err
			}

			fmt.Println("deleted")

			return nil
		}),
	}
}

func credentialsTestCommand() *cli.Command {
	return &cli.Command{
		Name:      "test",
		Usage:     "Verify a stored credential against its target",
		ArgsUsage: "<credential-id>",
		Action: run(guard.RouteCredentials, func(ctx context.Context, a *app, command *cli.Command) error {
			id, err := idArg(command, "credential-id")
			if err != nil {
				return err
			}

			if err := a.client.Credentials().Test(ctx, id); err != nil {
				return err
			}

			fmt.Println("credential ok")

			return nil
		}),
	}
}

func credentialsTypesCommand() *cli.Command {
	return &cli.Command{
		Name:  "types",
		Usage: "List the known credential types and their fields",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(_ context.Context, command *cli.Command) error {
			registry := credentials.NewRegistry()

			if command.Bool("json") {
				out := map[string]any{}
				for _, tag := range registry.Tags() {
					schema, _ := registry.Schema(tag)
					out[tag] = schema
				}

				return printJSON(out)
			}

			var rows [][]string

			for _, tag := range registry.Tags() {
				spec, _ := registry.Lookup(tag)

				fields := make([]string, 0, len(spec.Fields))
				for _, field := range spec.Fields {
					name := field.Name
					if field.Required {
						name += "*"
					}

					fields = append(fields, name)
				}

				rows = append(rows, []string{tag, spec.Label, strings.Join(fields, ", ")})
			}

			printTable([]string{"TAG", "LABEL", "FIELDS"}, rows)

			return nil
		},
	}
}
