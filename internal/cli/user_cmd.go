package cli

import (
	"fmt"

	"github.com/kampus/tugasin/internal/domain"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Edit the local profile",
	}

	cmd.AddCommand(newUserUpdateCmd(app), newUserThemeCmd(app))
	return cmd
}

func newUserUpdateCmd(app *App) *cobra.Command {
	var name, email, avatar string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change name, email or avatar",
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.UserPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("email") {
				patch.Email = &email
			}
			if cmd.Flags().Changed("avatar") {
				patch.Avatar = &avatar
			}
			if patch == (domain.UserPatch{}) {
				return fmt.Errorf("nothing to update; pass --name, --email or --avatar")
			}
			if err := app.Store.UpdateUser(cmd.Context(), patch); err != nil {
				return flagError(err)
			}
			u := app.Store.User()
			fmt.Fprintf(cmd.OutOrStdout(), "Profile saved: %s <%s>\n", u.Name, u.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&avatar, "avatar", "", "Avatar URL, empty to clear")
	return cmd
}

func newUserThemeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "theme",
		Short: "Toggle between the light and dark theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, err := app.Store.ToggleTheme(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", theme)
			return nil
		},
	}
}
