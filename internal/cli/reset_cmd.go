package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all local data and the stored session",
		Long: `Delete all local data and the stored session.

Tasks, notes, events, the profile and the login are removed from this
machine. Sample data is seeded again on the next run. Todos on the server
are not touched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to reset without --yes")
				}
				if err := confirmForm("Delete all local data?", &yes).Run(); err != nil {
					return err
				}
				if !yes {
					fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled.")
					return nil
				}
			}
			if err := app.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("resetting local data: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All local data cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}
