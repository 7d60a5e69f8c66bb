package cli

import (
	"fmt"
	"sort"

	"github.com/kampus/tugasin/internal/cli/formatter"
	"github.com/kampus/tugasin/internal/domain"
	"github.com/spf13/cobra"
)

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"events"},
		Short:   "Manage calendar events",
	}

	cmd.AddCommand(
		newEventAddCmd(app),
		newEventListCmd(app),
		newEventUpdateCmd(app),
		newEventRemoveCmd(app),
	)

	return cmd
}

func newEventAddCmd(app *App) *cobra.Command {
	var f eventFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := f.times(app.now().Location())
			if err != nil {
				return err
			}
			if end.IsZero() {
				end = start
			}

			draft := domain.EventDraft{Title: f.title, Start: start, End: end, AllDay: f.allDay}
			if f.task != "" {
				t, err := resolveTask(app, f.task)
				if err != nil {
					return err
				}
				draft.TaskID = &t.ID
			}

			e, err := app.Store.AddEvent(cmd.Context(), draft)
			if err != nil {
				return flagError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %s %s on %s\n",
				formatter.TruncID(e.ID), formatter.Bold(e.Title), formatter.HumanDate(e.Start))
			return nil
		},
	}

	f.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func newEventListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List events by start time",
		RunE: func(cmd *cobra.Command, args []string) error {
			events := app.Store.Events()
			sort.SliceStable(events, func(i, j int) bool {
				return events[i].Start.Before(events[j].Start)
			})

			titles := make(map[string]string)
			for _, t := range app.Store.Tasks() {
				titles[t.ID] = t.Title
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEventList(events, titles))
			return nil
		},
	}
}

func newEventUpdateCmd(app *App) *cobra.Command {
	var f eventFlags
	var unlink bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change event fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveEvent(app, args[0])
			if err != nil {
				return err
			}
			start, end, err := f.times(app.now().Location())
			if err != nil {
				return err
			}

			var patch domain.EventPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &f.title
			}
			if flags.Changed("start") {
				patch.Start = &start
			}
			if flags.Changed("end") {
				patch.End = &end
			}
			if flags.Changed("all-day") {
				patch.AllDay = &f.allDay
			}
			if flags.Changed("task") {
				t, err := resolveTask(app, f.task)
				if err != nil {
					return err
				}
				patch.TaskID = &t.ID
			}
			patch.ClearTaskID = unlink

			if err := app.Store.UpdateEvent(cmd.Context(), id, patch); err != nil {
				return flagError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated event %s\n", formatter.TruncID(id))
			return nil
		},
	}

	f.register(cmd.Flags())
	cmd.Flags().BoolVar(&unlink, "unlink", false, "Drop the linked task")
	return cmd
}

func newEventRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete an event",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveEvent(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Store.DeleteEvent(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted event %s\n", formatter.TruncID(id))
			return nil
		},
	}
}
