package store

import (
	"time"

	"github.com/kampus/tugasin/internal/domain"
)

// SampleSnapshot is the state a brand new store starts with: the default
// user, three sample tasks and two sample notes, dated relative to now.
func SampleSnapshot(now time.Time, newID func() string) domain.Snapshot {
	tomorrow := now.AddDate(0, 0, 1)
	nextWeek := now.AddDate(0, 0, 7)

	tasks := []domain.TaskDraft{
		{
			Title:       "Complete Programming Assignment",
			Description: "Finish the Java programming assignment for CS101",
			DueDate:     tomorrow,
			Priority:    domain.PriorityHigh,
			Category:    domain.CategoryAcademic,
			Status:      domain.StatusPending,
			SubTasks: []domain.SubTask{
				{Title: "Task 1: Write functions", Completed: true},
				{Title: "Task 2: Test code"},
				{Title: "Task 3: Submit to portal"},
			},
			Tags: []string{"CS101", "java", "programming"},
		},
		{
			Title:       "Weekly Meeting with Study Group",
			Description: "Meet with the study group to discuss project progress",
			DueDate:     now,
			Priority:    domain.PriorityMedium,
			Category:    domain.CategoryOrganization,
			Status:      domain.StatusInProgress,
			Tags:        []string{"meeting", "project"},
		},
		{
			Title:       "Read Chapter 5 of Textbook",
			Description: "Read and take notes on Chapter 5 for Psychology class",
			DueDate:     nextWeek,
			Priority:    domain.PriorityLow,
			Category:    domain.CategoryAcademic,
			Status:      domain.StatusPending,
			Tags:        []string{"psychology", "reading"},
		},
	}

	notes := []domain.NoteDraft{
		{
			Title:    "Psychology Lecture Notes",
			Content:  "Today we covered cognitive development theories...",
			Category: domain.CategoryAcademic,
			Tags:     []string{"psychology", "lecture"},
		},
		{
			Title:    "Project Ideas",
			Content:  "Potential topics for the final project: 1. Data visualization for campus services...",
			Category: domain.CategoryAcademic,
			Tags:     []string{"project", "ideas"},
		},
	}

	s := domain.Snapshot{
		User:   domain.DefaultUser(),
		Tasks:  make([]domain.Task, 0, len(tasks)),
		Notes:  make([]domain.Note, 0, len(notes)),
		Events: []domain.CalendarEvent{},
	}
	for _, d := range tasks {
		s.Tasks = append(s.Tasks, d.Build(newID(), newID))
	}
	for _, d := range notes {
		s.Notes = append(s.Notes, d.Build(newID(), now))
	}
	return s
}
