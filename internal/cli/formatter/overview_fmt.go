package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/kampus/tugasin/internal/domain"
	"github.com/kampus/tugasin/internal/stats"
)

// FormatDashboard renders the stat cards, progress breakdown and the today
// and upcoming lists.
func FormatDashboard(d stats.DashboardView, now time.Time) string {
	var b strings.Builder

	b.WriteString(Header("Dashboard"))
	b.WriteString("\n")
	b.WriteString(Dim(now.Format("Monday, January 2, 2006")))
	b.WriteString("\n\n")

	cards := fmt.Sprintf("%s %s   %s %s   %s %s",
		Dim("Completed"), StyleGreen.Render(fmt.Sprint(d.Completed)),
		Dim("Pending"), StyleBlue.Render(fmt.Sprint(d.Pending)),
		Dim("Total"), Bold(fmt.Sprint(d.Total)))
	b.WriteString(cards)
	b.WriteString("\n\n")

	b.WriteString(Header("Progress"))
	b.WriteString("\n")
	if d.Total == 0 {
		b.WriteString(Dim("No tasks yet. Add a task to see your progress."))
		b.WriteString("\n")
	} else {
		fmt.Fprintf(&b, "%s\n", RenderProgress(d.CompletionRate, 24))
		fmt.Fprintln(&b, RenderCountBar("Completed", d.Completed, d.Total, 16))
		fmt.Fprintln(&b, RenderCountBar("In Progress", d.InProgress, d.Total, 16))
		fmt.Fprintln(&b, RenderCountBar("Pending", d.Pending, d.Total, 16))
	}

	b.WriteString("\n")
	b.WriteString(Header("Today's Tasks"))
	b.WriteString("\n")
	b.WriteString(compactTasks(d.Today, now, "No tasks due today."))

	b.WriteString("\n")
	b.WriteString(Header("Upcoming"))
	b.WriteString("\n")
	b.WriteString(compactTasks(d.Upcoming, now, "No upcoming tasks."))

	return b.String()
}

func compactTasks(tasks []domain.Task, now time.Time, empty string) string {
	if len(tasks) == 0 {
		return Dim(empty) + "\n"
	}
	var b strings.Builder
	for _, t := range tasks {
		fmt.Fprintf(&b, "  %s %s %s %s\n",
			Checkbox(t.IsCompleted()),
			Truncate(t.Title, 44),
			PriorityColor(t.Priority).Render("●"),
			DueStyled(t.DueDate, now, t.IsCompleted()))
	}
	return b.String()
}

// FormatCategories renders the category counts and the tag overview.
func FormatCategories(tasks []domain.Task) string {
	var b strings.Builder
	counts := stats.CountByCategory(tasks)

	b.WriteString(Header("Categories"))
	b.WriteString("\n")
	for _, c := range domain.Categories {
		fmt.Fprintln(&b, RenderCountBar(categoryLabel(c), counts[c], len(tasks), 16))
	}

	b.WriteString("\n")
	b.WriteString(Header("Tags"))
	b.WriteString("\n")
	tags := stats.TagCounts(tasks)
	if len(tags) == 0 {
		b.WriteString(Dim("No tags yet."))
		b.WriteString("\n")
		return b.String()
	}
	rows := make([][]string, 0, len(tags))
	for _, tc := range tags {
		rows = append(rows, []string{StyleBlue.Render("#" + tc.Tag), fmt.Sprint(tc.Count)})
	}
	b.WriteString(RenderTable([]string{"TAG", "TASKS"}, rows, ""))
	return b.String()
}

func categoryLabel(c domain.TaskCategory) string {
	s := string(c)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatProfile renders the user card with task statistics.
func FormatProfile(u domain.User, tasks []domain.Task) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n", Bold(u.Name), Dim(u.Email))
	if u.Avatar != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("Avatar:"), *u.Avatar)
	}
	fmt.Fprintf(&b, "%s %s\n\n", Dim("Theme: "), string(u.Theme))

	completed := stats.CountByStatus(tasks)[domain.StatusCompleted]
	fmt.Fprintf(&b, "%s %d   %s %d\n", Dim("Tasks"), len(tasks), Dim("Completed"), completed)
	fmt.Fprintf(&b, "%s %s\n\n", Dim("Completion"), RenderProgress(stats.CompletionRate(tasks), 20))

	counts := stats.CountByCategory(tasks)
	for _, c := range domain.Categories {
		fmt.Fprintln(&b, RenderCountBar(categoryLabel(c), counts[c], len(tasks), 16))
	}
	return RenderBox("Profile", strings.TrimRight(b.String(), "\n"))
}

// FormatCalendar renders a Sunday-first month grid. Days with tasks show the
// task count; today is highlighted.
func FormatCalendar(month time.Time, tasks []domain.Task, now time.Time) string {
	byDate := stats.TasksByDate(tasks, month.Location())
	var b strings.Builder

	b.WriteString(Header(month.Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(Dim(" Sun    Mon    Tue    Wed    Thu    Fri    Sat"))
	b.WriteString("\n")

	for _, week := range stats.MonthGrid(month) {
		for i, day := range week {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(calendarCell(day, byDate, now))
		}
		b.WriteString("\n")
	}

	// Task list for the month, grouped by day.
	first := true
	for _, week := range stats.MonthGrid(month) {
		for _, day := range week {
			key := day.Date.Format(stats.DateKey)
			dayTasks := byDate[key]
			if !day.InMonth || len(dayTasks) == 0 {
				continue
			}
			if first {
				b.WriteString("\n")
				first = false
			}
			fmt.Fprintf(&b, "%s\n", StyleHeader.Render(day.Date.Format("Mon Jan 2")))
			for _, t := range dayTasks {
				fmt.Fprintf(&b, "  %s %s %s\n", Checkbox(t.IsCompleted()), t.Title, PriorityColor(t.Priority).Render("●"))
			}
		}
	}
	return b.String()
}

func calendarCell(day stats.Day, byDate map[string][]domain.Task, now time.Time) string {
	label := fmt.Sprintf("%2d", day.Date.Day())
	count := len(byDate[day.Date.Format(stats.DateKey)])
	suffix := "    "
	if count > 0 {
		suffix = fmt.Sprintf(" (%d)", count)
		if count > 9 {
			suffix = " (+)"
		}
	}
	switch {
	case !day.InMonth:
		return Dim(label) + "    "
	case stats.SameDay(day.Date, now):
		return StyleHeader.Render(label) + StyleYellow.Render(suffix)
	case count > 0:
		return Bold(label) + StyleYellow.Render(suffix)
	default:
		return StyleFg.Render(label) + suffix
	}
}

// FormatTodoList renders the remote checklist.
func FormatTodoList(todos []domain.Todo) string {
	if len(todos) == 0 {
		return Dim("Your todo list is empty.") + "\n"
	}
	var b strings.Builder
	done := 0
	for _, t := range todos {
		text := t.Text
		if t.OnCheckList {
			done++
			text = Dim(text)
		}
		fmt.Fprintf(&b, "%s %s %s\n", Checkbox(t.OnCheckList), text, TruncID(t.ID))
	}
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("%d of %d checked", done, len(todos))))
	return b.String()
}
