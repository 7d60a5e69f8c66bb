package cli

import (
	"errors"
	"fmt"

	"github.com/kampus/tugasin/internal/auth"
	"github.com/kampus/tugasin/internal/cli/formatter"
	"github.com/kampus/tugasin/internal/domain"
	"github.com/kampus/tugasin/internal/notify"
	"github.com/kampus/tugasin/internal/remote"
	"github.com/kampus/tugasin/internal/todoapi"
	"github.com/spf13/cobra"
)

func newRegisterCmd(app *App) *cobra.Command {
	var c auth.Credentials

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the todo server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := askPassword(app, &c.Password); err != nil {
				return err
			}
			session, err := app.Auth.Register(cmd.Context(), c)
			if err != nil {
				return authFailure(app, "Registration failed", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! You are logged in as %s.\n",
				formatter.Bold(session.FullName), session.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&c.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&c.FullName, "name", "", "Full name")
	cmd.Flags().StringVar(&c.Password, "password", "", "Password (prompted when omitted on a terminal)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var c auth.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the todo server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := askPassword(app, &c.Password); err != nil {
				return err
			}
			session, err := app.Auth.Login(cmd.Context(), c)
			if err != nil {
				return authFailure(app, "Login failed", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", formatter.Bold(session.FullName), session.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&c.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&c.Password, "password", "", "Password (prompted when omitted on a terminal)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.Auth.Logout(cmd.Context())
			switch {
			case errors.Is(err, auth.ErrNotLoggedIn):
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			case err != nil:
				// The local session is gone either way.
				app.notify(notify.Failure("Logged out locally", remote.Describe(err)))
				return reported(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := app.Auth.Current()
			if !session.Active() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in. Run \"tugasin login\" first.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", formatter.Bold(session.FullName), session.Email)
			return nil
		},
	}
}

func askPassword(app *App, password *string) error {
	if *password != "" {
		return nil
	}
	if !app.interactive() {
		return fmt.Errorf("--password: password is required")
	}
	return passwordForm(password).Run()
}

// authFailure turns a failed login or register into a notification.
// Validation problems are returned as flag errors instead.
func authFailure(app *App, title string, err error) error {
	if errors.Is(err, domain.ErrValidation) {
		return flagError(err)
	}
	msg := remote.Describe(err)
	if errors.Is(err, todoapi.ErrUnauthorized) {
		msg = "Email or password is incorrect."
	}
	app.notify(notify.Failure(title, msg))
	return reported(err)
}
