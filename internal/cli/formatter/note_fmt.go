package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/kampus/tugasin/internal/domain"
)

// FormatNoteList renders notes as cards, most recently updated first as
// given by the caller.
func FormatNoteList(notes []domain.Note, now time.Time) string {
	if len(notes) == 0 {
		return Dim("No notes found.") + "\n"
	}
	var b strings.Builder
	for i, n := range notes {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s %s\n", TruncID(n.ID), Bold(n.Title), CategoryBadge(n.Category))
		if n.Content != "" {
			b.WriteString("  ")
			b.WriteString(Truncate(strings.ReplaceAll(n.Content, "\n", " "), 72))
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  %s %s\n", Tags(n.Tags), Dim("updated "+RelativeDateFrom(n.UpdatedAt, now)))
	}
	return b.String()
}

// FormatEventList renders calendar events in the order given.
func FormatEventList(events []domain.CalendarEvent, tasks map[string]string) string {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		when := e.Start.Format("Jan 2 15:04") + " - " + e.End.Format("15:04")
		if e.AllDay {
			when = e.Start.Format("Jan 2") + " " + Dim("all day")
		}
		task := Dim("--")
		if e.TaskID != nil {
			task = TruncID(*e.TaskID)
			if title, ok := tasks[*e.TaskID]; ok {
				task = Truncate(title, 24)
			}
		}
		rows = append(rows, []string{TruncID(e.ID), Truncate(e.Title, 32), when, task})
	}
	return RenderTable([]string{"ID", "TITLE", "WHEN", "TASK"}, rows, "No events scheduled.")
}
