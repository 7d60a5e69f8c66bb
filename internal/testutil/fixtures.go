package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/kampus/tugasin/internal/domain"
)

// Task options
type TaskOption func(*domain.Task)

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = d
	}
}

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithPriority(p domain.TaskPriority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithCategory(c domain.TaskCategory) TaskOption {
	return func(t *domain.Task) {
		t.Category = c
	}
}

func WithTags(tags ...string) TaskOption {
	return func(t *domain.Task) {
		t.Tags = tags
	}
}

func WithSubTasks(titles ...string) TaskOption {
	return func(t *domain.Task) {
		for _, title := range titles {
			t.SubTasks = append(t.SubTasks, domain.SubTask{ID: uuid.New().String(), Title: title})
		}
	}
}

func NewTestTask(title string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		ID:          uuid.New().String(),
		Title:       title,
		DueDate:     time.Now().UTC().AddDate(0, 0, 1),
		Priority:    domain.PriorityMedium,
		Category:    domain.CategoryAcademic,
		Status:      domain.StatusPending,
		SubTasks:    []domain.SubTask{},
		Attachments: []domain.Attachment{},
		Tags:        []string{},
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// NewTestDraft returns a valid draft due a day from now.
func NewTestDraft(title string) domain.TaskDraft {
	return domain.TaskDraft{
		Title:   title,
		DueDate: time.Now().UTC().AddDate(0, 0, 1),
	}
}

// FixedClock returns a clock that starts at start and advances by step on
// every call.
func FixedClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(step)
		return now
	}
}
