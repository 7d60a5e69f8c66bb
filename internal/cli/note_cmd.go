package cli

import (
	"fmt"
	"sort"

	"github.com/kampus/tugasin/internal/cli/formatter"
	"github.com/kampus/tugasin/internal/domain"
	"github.com/kampus/tugasin/internal/stats"
	"github.com/spf13/cobra"
)

func newNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes"},
		Short:   "Manage notes",
	}

	cmd.AddCommand(
		newNoteAddCmd(app),
		newNoteListCmd(app),
		newNoteShowCmd(app),
		newNoteUpdateCmd(app),
		newNoteRemoveCmd(app),
	)

	return cmd
}

func newNoteAddCmd(app *App) *cobra.Command {
	var f noteFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Store.AddNote(cmd.Context(), f.draft())
			if err != nil {
				return flagError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created note %s %s\n", formatter.TruncID(n.ID), formatter.Bold(n.Title))
			return nil
		},
	}

	f.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newNoteListCmd(app *App) *cobra.Command {
	var search, category string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			notes := stats.FilterNotes(app.Store.Notes(), stats.NoteFilter{
				Search:   search,
				Category: domain.TaskCategory(category),
			})
			sort.SliceStable(notes, func(i, j int) bool {
				return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
			})
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNoteList(notes, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Match title or content")
	cmd.Flags().StringVar(&category, "category", "", "Only this category")
	return cmd
}

func newNoteShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a note in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := resolveNote(app, args[0])
			if err != nil {
				return err
			}
			now := app.now()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", formatter.Bold(n.Title), formatter.CategoryBadge(n.Category))
			fmt.Fprintf(out, "%s\n\n", formatter.Dim(fmt.Sprintf("created %s, updated %s",
				formatter.HumanDate(n.CreatedAt.In(now.Location())), formatter.RelativeDateFrom(n.UpdatedAt, now))))
			if n.Content != "" {
				fmt.Fprintln(out, n.Content)
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, formatter.Tags(n.Tags))
			return nil
		},
	}
}

func newNoteUpdateCmd(app *App) *cobra.Command {
	var f noteFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change note fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := resolveNote(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Store.UpdateNote(cmd.Context(), n.ID, f.patch(cmd.Flags())); err != nil {
				return flagError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated note %s\n", formatter.TruncID(n.ID))
			return nil
		},
	}

	f.register(cmd.Flags())
	return cmd
}

func newNoteRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := resolveNote(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Store.DeleteNote(cmd.Context(), n.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted note %s\n", n.Title)
			return nil
		},
	}
}
