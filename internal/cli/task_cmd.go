package cli

import (
	"fmt"
	"strings"

	"github.com/kampus/tugasin/internal/cli/formatter"
	"github.com/kampus/tugasin/internal/domain"
	"github.com/kampus/tugasin/internal/stats"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskShowCmd(app),
		newTaskUpdateCmd(app),
		newTaskDoneCmd(app),
		newTaskRemoveCmd(app),
		newSubTaskCmd(app),
		newTaskAttachCmd(app),
		newTaskDetachCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.title == "" && app.interactive() {
				f.priority = domain.CoalesceStr(f.priority, string(domain.PriorityMedium))
				f.category = domain.CoalesceStr(f.category, string(domain.CategoryAcademic))
				if err := taskForm(&f.title, &f.due, &f.priority, &f.category, &f.desc).Run(); err != nil {
					return err
				}
			}

			now := app.now()
			draft, err := f.draft(now.Location())
			if err != nil {
				return err
			}
			t, err := app.Store.AddTask(cmd.Context(), draft)
			if err != nil {
				return flagError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s %s (due %s)\n",
				formatter.TruncID(t.ID), formatter.Bold(t.Title), formatter.RelativeDateFrom(t.DueDate, now))
			return nil
		},
	}

	f.register(cmd.Flags(), true)
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var tab, search, category, priority, tag string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch stats.Tab(tab) {
			case stats.TabAll, stats.TabPending, stats.TabCompleted:
			default:
				return fmt.Errorf("--tab: must be one of all, pending, completed")
			}

			tasks := stats.FilterTasks(app.Store.Tasks(), stats.TaskFilter{
				Tab:      stats.Tab(tab),
				Search:   search,
				Category: domain.TaskCategory(category),
				Priority: domain.TaskPriority(priority),
				Tag:      tag,
			})
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&tab, "tab", string(stats.TabAll), "Tab: all, pending, completed")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Match title")
	cmd.Flags().StringVar(&category, "category", "", "Only this category")
	cmd.Flags().StringVar(&priority, "priority", "", "Only this priority")
	cmd.Flags().StringVar(&tag, "tag", "", "Only tasks with this tag")
	return cmd
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task with its subtasks and attachments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskDetail(t, app.now()))
			return nil
		},
	}
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			patch, err := f.patch(cmd.Flags(), app.now().Location())
			if err != nil {
				return err
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update; pass at least one flag")
			}
			if err := app.Store.UpdateTask(cmd.Context(), t.ID, patch); err != nil {
				return flagError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", formatter.TruncID(t.ID))
			return nil
		},
	}

	f.register(cmd.Flags(), false)
	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Store.CompleteTask(cmd.Context(), t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StatusPill(domain.StatusCompleted), t.Title)
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Store.DeleteTask(cmd.Context(), t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", t.Title)
			return nil
		},
	}
}

func newSubTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Manage the subtasks of a task",
	}

	add := &cobra.Command{
		Use:   "add <task-id> <title>",
		Short: "Add a subtask",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			id, err := app.Store.AddSubTask(cmd.Context(), t.ID, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added subtask %s to %s\n", formatter.TruncID(id), t.Title)
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <task-id> <subtask-id>",
		Short: "Flip a subtask between done and open",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			subID, err := resolveSubTask(t, args[1])
			if err != nil {
				return err
			}
			if err := app.Store.ToggleSubTask(cmd.Context(), t.ID, subID); err != nil {
				return err
			}
			updated, _ := app.Store.Task(t.ID)
			p := stats.SubTaskProgress(updated)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d of %d done\n", formatter.RenderProgress(p.Percent(), 20), p.Done, p.Total)
			return nil
		},
	}

	rm := &cobra.Command{
		Use:     "rm <task-id> <subtask-id>",
		Aliases: []string{"remove"},
		Short:   "Delete a subtask",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			subID, err := resolveSubTask(t, args[1])
			if err != nil {
				return err
			}
			if err := app.Store.DeleteSubTask(cmd.Context(), t.ID, subID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted subtask %s\n", formatter.TruncID(subID))
			return nil
		},
	}

	cmd.AddCommand(add, toggle, rm)
	return cmd
}

func newTaskAttachCmd(app *App) *cobra.Command {
	var name, url, kind string

	cmd := &cobra.Command{
		Use:   "attach <task-id>",
		Short: "Attach a file reference to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			id, err := app.Store.AddAttachment(cmd.Context(), t.ID, domain.Attachment{Name: name, URL: url, Type: kind})
			if err != nil {
				return flagError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Attached %s %s to %s\n", formatter.TruncID(id), name, t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "File name")
	cmd.Flags().StringVar(&url, "url", "", "File location")
	cmd.Flags().StringVar(&kind, "type", "", "MIME type")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func newTaskDetachCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "detach <task-id> <attachment-id>",
		Short: "Remove an attachment from a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			attID, err := resolveAttachment(t, args[1])
			if err != nil {
				return err
			}
			if err := app.Store.RemoveAttachment(cmd.Context(), t.ID, attID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed attachment %s\n", formatter.TruncID(attID))
			return nil
		},
	}
}
