package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kampus/tugasin/internal/auth"
	"github.com/kampus/tugasin/internal/cli/formatter"
	"github.com/kampus/tugasin/internal/domain"
	"github.com/spf13/cobra"
)

func newTodoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "todo",
		Aliases: []string{"todos"},
		Short:   "Work with the todo list synced to the server",
	}

	cmd.AddCommand(
		newTodoListCmd(app),
		newTodoAddCmd(app),
		newTodoEditCmd(app),
		newTodoToggleCmd(app),
		newTodoRemoveCmd(app),
		newTodoClearCmd(app),
	)

	return cmd
}

func newTodoListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Fetch and print the todo list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTodos(cmd, app, "Loading todos", func(ctx context.Context, token string) error {
				return nil
			})
		},
	}
}

func newTodoAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if err := domain.ValidateTodoText(text); err != nil {
				return err
			}
			return withTodos(cmd, app, "Adding todo", func(ctx context.Context, token string) error {
				return app.Todos.Add(ctx, token, text)
			})
		},
	}
}

func newTodoEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Change the text of a todo",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")
			if err := domain.ValidateTodoText(text); err != nil {
				return err
			}
			return withTodos(cmd, app, "Saving todo", func(ctx context.Context, token string) error {
				id, err := resolveTodo(app, args[0])
				if err != nil {
					return err
				}
				return app.Todos.Edit(ctx, token, id, text)
			})
		},
	}
}

func newTodoToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"check"},
		Short:   "Check or uncheck a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTodos(cmd, app, "Saving todo", func(ctx context.Context, token string) error {
				id, err := resolveTodo(app, args[0])
				if err != nil {
					return err
				}
				return app.Todos.Toggle(ctx, token, id)
			})
		},
	}
}

func newTodoRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTodos(cmd, app, "Deleting todo", func(ctx context.Context, token string) error {
				id, err := resolveTodo(app, args[0])
				if errors.Is(err, errUnknownID) {
					// The server may still know an id the list did not include.
					id = args[0]
				} else if err != nil {
					return err
				}
				return app.Todos.Delete(ctx, token, id)
			})
		},
	}
}

func newTodoClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every checked todo",
		RunE: func(cmd *cobra.Command, args []string) error {
			var cleared int
			err := withTodos(cmd, app, "Clearing checked todos", func(ctx context.Context, token string) error {
				n, err := app.Todos.ClearChecked(ctx, token)
				cleared = n
				return err
			})
			if cleared > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d checked todo(s).\n", cleared)
			}
			return err
		},
	}
}

// withTodos loads the list, runs op against it and prints the result. A
// spinner runs on stderr while requests are in flight on a terminal.
func withTodos(cmd *cobra.Command, app *App, waiting string, op func(ctx context.Context, token string) error) error {
	token, err := app.Auth.Token()
	if errors.Is(err, auth.ErrNotLoggedIn) {
		return fmt.Errorf("not logged in; run \"tugasin login\" first")
	}
	if err != nil {
		return err
	}

	stop := func() {}
	if app.interactive() {
		stop = formatter.StartSpinner(cmd.ErrOrStderr(), waiting)
	}
	ctx := cmd.Context()
	err = app.Todos.Refresh(ctx, token)
	if err == nil {
		err = op(ctx, token)
	}
	stop()

	if err != nil {
		// Everything else already reached the user as a notification.
		if errors.Is(err, errUnknownID) || errors.Is(err, errAmbiguousID) {
			return err
		}
		return reported(err)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTodoList(app.Todos.Items()))
	return nil
}
