package cli

import (
	"context"
	"errors"
	"time"

	"github.com/kampus/tugasin/internal/auth"
	"github.com/kampus/tugasin/internal/notify"
	"github.com/kampus/tugasin/internal/remote"
	"github.com/kampus/tugasin/internal/store"
	"github.com/spf13/cobra"
)

// App holds everything the commands work against.
type App struct {
	Store    *store.Store
	Auth     *auth.Service
	Todos    *remote.TodoList
	Notifier notify.Notifier

	// Reset wipes every persisted record.
	Reset func(ctx context.Context) error

	Now           func() time.Time
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) notify(n notify.Notification) {
	if a.Notifier != nil {
		a.Notifier.Notify(n)
	}
}

// NewRootCmd creates the top-level "tugasin" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tugasin",
		Short:         "Student task manager with notes, calendar and a synced todo list",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTaskCmd(app),
		newNoteCmd(app),
		newEventCmd(app),
		newDashboardCmd(app),
		newCalendarCmd(app),
		newCategoriesCmd(app),
		newProfileCmd(app),
		newUserCmd(app),
		newRegisterCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoAmICmd(app),
		newTodoCmd(app),
		newResetCmd(app),
	)

	return root
}

// reportedError marks a failure the user has already been notified about.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// Reported reports whether err was already shown as a notification, so the
// caller should exit without printing it again.
func Reported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
