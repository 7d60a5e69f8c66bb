package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/kampus/tugasin/internal/domain"
	"github.com/kampus/tugasin/internal/stats"
)

// FormatTaskList renders the task table.
func FormatTaskList(tasks []domain.Task, now time.Time) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		p := stats.SubTaskProgress(t)
		steps := Dim("--")
		if p.Total > 0 {
			steps = fmt.Sprintf("%d/%d", p.Done, p.Total)
		}
		rows = append(rows, []string{
			TruncID(t.ID),
			Truncate(t.Title, 40),
			StatusPill(t.Status),
			PriorityBadge(t.Priority),
			CategoryBadge(t.Category),
			DueStyled(t.DueDate, now, t.IsCompleted()),
			steps,
		})
	}
	return RenderTable(
		[]string{"ID", "TITLE", "STATUS", "PRIORITY", "CATEGORY", "DUE", "STEPS"},
		rows,
		"No tasks found. Try adjusting your search or filters.",
	)
}

// FormatTaskDetail renders one task with its subtasks and attachments.
func FormatTaskDetail(t domain.Task, now time.Time) string {
	var b strings.Builder

	b.WriteString(Bold(t.Title))
	b.WriteString("\n")
	if t.Description != "" {
		b.WriteString(Dim(t.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %s\n", Dim("ID:      "), t.ID)
	fmt.Fprintf(&b, "%s %s\n", Dim("Status:  "), StatusPill(t.Status))
	fmt.Fprintf(&b, "%s %s\n", Dim("Priority:"), PriorityBadge(t.Priority))
	fmt.Fprintf(&b, "%s %s\n", Dim("Category:"), CategoryBadge(t.Category))
	fmt.Fprintf(&b, "%s %s (%s)\n", Dim("Due:     "), HumanDate(t.DueDate.In(now.Location())), DueStyled(t.DueDate, now, t.IsCompleted()))
	fmt.Fprintf(&b, "%s %s\n", Dim("Tags:    "), Tags(t.Tags))

	if len(t.SubTasks) > 0 {
		p := stats.SubTaskProgress(t)
		b.WriteString("\n")
		b.WriteString(Header("Subtasks"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %d of %d done\n", RenderProgress(p.Percent(), 20), p.Done, p.Total)
		for _, st := range t.SubTasks {
			fmt.Fprintf(&b, "  %s %s %s\n", Checkbox(st.Completed), st.Title, TruncID(st.ID))
		}
	}

	if len(t.Attachments) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Attachments"))
		b.WriteString("\n")
		for _, a := range t.Attachments {
			kind := ""
			if a.Type != "" {
				kind = " " + Dim("("+a.Type+")")
			}
			fmt.Fprintf(&b, "  %s %s%s %s\n", TruncID(a.ID), a.Name, kind, StyleBlue.Render(a.URL))
		}
	}

	return b.String()
}
