package cli

import (
	"fmt"
	"time"

	"github.com/kampus/tugasin/internal/cli/formatter"
	"github.com/kampus/tugasin/internal/stats"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"home"},
		Short:   "Show task stats with today's and upcoming tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(stats.Dashboard(app.Store.Tasks(), now), now))
			return nil
		},
	}
}

func newCalendarCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month grid of task due dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			if month != "" {
				parsed, err := parseMonth(month, now.Location())
				if err != nil {
					return fmt.Errorf("--month: %w", err)
				}
				m = parsed
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCalendar(m, app.Store.Tasks(), now))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to show (YYYY-MM), defaults to the current month")
	return cmd
}

func newCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show task counts per category and tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCategories(app.Store.Tasks()))
			return nil
		},
	}
}

func newProfileCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the user profile with completion stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(app.Store.User(), app.Store.Tasks()))
			return nil
		},
	}
}
