package stats

import (
	"strings"

	"github.com/kampus/tugasin/internal/domain"
)

// Tab selects which side of the completed line a task list shows.
type Tab string

const (
	TabAll       Tab = "all"
	TabPending   Tab = "pending"
	TabCompleted Tab = "completed"
)

// TaskFilter narrows the task list. Zero fields match everything; Pending
// means "not completed", so in-progress tasks are included.
type TaskFilter struct {
	Tab      Tab
	Search   string
	Category domain.TaskCategory
	Priority domain.TaskPriority
	Tag      string
}

// FilterTasks applies f, keeping collection order.
func FilterTasks(tasks []domain.Task, f TaskFilter) []domain.Task {
	query := strings.ToLower(strings.TrimSpace(f.Search))
	out := []domain.Task{}
	for _, t := range tasks {
		switch f.Tab {
		case TabPending:
			if t.IsCompleted() {
				continue
			}
		case TabCompleted:
			if !t.IsCompleted() {
				continue
			}
		}
		if query != "" && !strings.Contains(strings.ToLower(t.Title), query) {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if f.Tag != "" && !domain.HasTag(t.Tags, f.Tag) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// NoteFilter searches title and content case-insensitively.
type NoteFilter struct {
	Search   string
	Category domain.TaskCategory
}

func FilterNotes(notes []domain.Note, f NoteFilter) []domain.Note {
	query := strings.ToLower(strings.TrimSpace(f.Search))
	out := []domain.Note{}
	for _, n := range notes {
		if query != "" &&
			!strings.Contains(strings.ToLower(n.Title), query) &&
			!strings.Contains(strings.ToLower(n.Content), query) {
			continue
		}
		if f.Category != "" && n.Category != f.Category {
			continue
		}
		out = append(out, n)
	}
	return out
}
