// Package stats holds pure read-only projections over tasks and notes. Nothing
// here mutates its input.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/kampus/tugasin/internal/domain"
)

// UpcomingLimit caps the upcoming list on the dashboard.
const UpcomingLimit = 5

// CountByStatus returns a count for every known status, zero included.
func CountByStatus(tasks []domain.Task) map[domain.TaskStatus]int {
	counts := make(map[domain.TaskStatus]int, len(domain.Statuses))
	for _, s := range domain.Statuses {
		counts[s] = 0
	}
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}

// CountByCategory returns a count for every known category, zero included.
func CountByCategory(tasks []domain.Task) map[domain.TaskCategory]int {
	counts := make(map[domain.TaskCategory]int, len(domain.Categories))
	for _, c := range domain.Categories {
		counts[c] = 0
	}
	for _, t := range tasks {
		counts[t.Category]++
	}
	return counts
}

// CompletionRate is round(100 * completed / total), 0 for no tasks.
func CompletionRate(tasks []domain.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for i := range tasks {
		if tasks[i].IsCompleted() {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(tasks))))
}

// SameDay compares calendar days in the location of b.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// TodayTasks keeps tasks due on now's calendar day, in collection order.
func TodayTasks(tasks []domain.Task, now time.Time) []domain.Task {
	out := []domain.Task{}
	for _, t := range tasks {
		if SameDay(t.DueDate, now) {
			out = append(out, t)
		}
	}
	return out
}

// UpcomingTasks keeps incomplete tasks due after now and not today, sorted by
// due date with the earliest first, capped at UpcomingLimit.
func UpcomingTasks(tasks []domain.Task, now time.Time) []domain.Task {
	out := []domain.Task{}
	for _, t := range tasks {
		if t.IsCompleted() || SameDay(t.DueDate, now) || !t.DueDate.After(now) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	if len(out) > UpcomingLimit {
		out = out[:UpcomingLimit]
	}
	return out
}

// DashboardView is everything the dashboard screen shows.
type DashboardView struct {
	Total          int
	Completed      int
	InProgress     int
	Pending        int
	CompletionRate int
	Today          []domain.Task
	Upcoming       []domain.Task
	ByCategory     map[domain.TaskCategory]int
}

func Dashboard(tasks []domain.Task, now time.Time) DashboardView {
	byStatus := CountByStatus(tasks)
	return DashboardView{
		Total:          len(tasks),
		Completed:      byStatus[domain.StatusCompleted],
		InProgress:     byStatus[domain.StatusInProgress],
		Pending:        byStatus[domain.StatusPending],
		CompletionRate: CompletionRate(tasks),
		Today:          TodayTasks(tasks, now),
		Upcoming:       UpcomingTasks(tasks, now),
		ByCategory:     CountByCategory(tasks),
	}
}

// TagCount is one row of the tag overview.
type TagCount struct {
	Tag   string
	Count int
}

// TagCounts counts tasks per tag, most used first, ties by tag name.
func TagCounts(tasks []domain.Task) []TagCount {
	counts := map[string]int{}
	for _, t := range tasks {
		seen := map[string]bool{}
		for _, tag := range t.Tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			counts[tag]++
		}
	}
	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// Progress is completed over total subtasks.
type Progress struct {
	Done  int
	Total int
}

// Percent rounds like CompletionRate; 0 when there are no subtasks.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(p.Done) / float64(p.Total)))
}

func SubTaskProgress(t domain.Task) Progress {
	p := Progress{Total: len(t.SubTasks)}
	for _, st := range t.SubTasks {
		if st.Completed {
			p.Done++
		}
	}
	return p
}
