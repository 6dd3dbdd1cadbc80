package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/aipilotbyjd/n8njdfront/pkg/api"
	"github.com/aipilotbyjd/n8njdfront/pkg/guard"
	"github.com/aipilotbyjd/n8njdfront/pkg/session"
)

// AuthCommand covers login, logout, registration, and password rotation.
func AuthCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the login session",
		Commands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			registerCommand(),
			changePasswordCommand(),
			whoamiCommand(),
		},
	}
}

func passwordFromTerminal(prompt string) (string, error) {
	fmt.Print(prompt)

	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()

	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	return string(password), nil
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in and store the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Usage: "Account email", Required: true},
			&cli.StringFlag{Name: "password", Usage: "Account password (prompted when omitted)"},
		},
		Action: run(guard.RouteLogin, func(ctx context.Context, a *app, command *cli.Command) error {
			password := command.String("password")

			if password == "" {
				var err error

				password, err = passwordFromTerminal("Password: ")
				if err != nil {
					return err
				}
			}

			result, err := a.client.Auth().Login(ctx, api.LoginRequest{
				Email:    command.String("email"),
				Password: password,
			})
			if err != nil {
				return err
			}

			if err := a.sessions.Save(session.Session{
				Token:        result.Token,
				User:         result.User,
				Organization: result.Organization,
			}); err != nil {
				return err
			}

			fmt.Println("logged in")

			return nil
		}),
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Invalidate the session and clear it locally",
		Action: run(guard.RouteSettings, func(ctx context.Context, a *app, _ *cli.Command) error {
			// Clear locally even when the remote call fails; a stale
			// server-side token ages out on its own.
			if err := a.client.Auth().Logout(ctx); err != nil {
				a.logger.WarnContext(ctx, "Remote logout failed", "error", err)
			}

			if err := a.sessions.Clear(); err != nil {
				return err
			}

			fmt.Println("logged out")

			return nil
		}),
	}
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create an account and log in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Display name", Required: true},
			&cli.StringFlag{Name: "email", Usage: "Account email", Required: true},
		},
		Action: run(guard.RouteSignup, func(ctx context.Context, a *app, command *cli.Command) error {
			password, err := passwordFromTerminal("Password: ")
			if err != nil {
				return err
			}

			confirmation, err := passwordFromTerminal("Confirm password: ")
			if err != nil {
				return err
			}

			result, err := a.client.Auth().Register(ctx, api.RegisterRequest{
				Name:                 command.String("name"),
				Email:                command.String("email"),
				Password:             password,
				PasswordConfirmation: confirmation,
			})
			if err != nil {
				return err
			}

			if result.Token != "" {
				if err := a.sessions.Save(session.Session{
					Token:        result.Token,
					User:         result.User,
					Organization: result.Organization,
				}); err != nil {
					return err
				}
			}

			fmt.Println("account created")

			return nil
		}),
	}
}

func changePasswordCommand() *cli.Command {
	return &cli.Command{
		Name:  "change-password",
		Usage: "Rotate the account password",
		Action: run(guard.RouteChangePassword, func(ctx context.Context, a *app, _ *cli.Command) error {
			current, err := passwordFromTerminal("Current password: ")
			if err != nil {
				return err
			}

			next, err := passwordFromTerminal("New password: ")
			if err != nil {
				return err
			}

			confirmation, err := passwordFromTerminal("Confirm new password: ")
			if err != nil {
				return err
			}

			err = a.client.Auth().ChangePassword(ctx, api.ChangePasswordRequest{
				CurrentPassword:      current,
				Password:             next,
				PasswordConfirmation: confirmation,
			})
			if err != nil {
				return err
			}

			fmt.Println("password changed")

			return nil
		}),
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the stored session",
		Action: run(guard.RouteSettings, func(_ context.Context, a *app, _ *cli.Command) error {
			sess, err := a.sessions.Load()
			if err != nil {
				return err
			}

			if sess.User != nil {
				fmt.Printf("%s <%s>\n", sess.User.Name, sess.User.Email)
			} else {
				fmt.Println("logged in (no user blob stored)")
			}

			if sess.Organization != nil {
				fmt.Printf("organization: %s\n", sess.Organization.Name)
			}

			return nil
		}),
	}
}
