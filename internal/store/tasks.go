package store

import (
	"context"
	"strings"

	"github.com/kampus/tugasin/internal/domain"
)

// Tasks returns copies of all tasks in insertion order.
func (s *Store) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Task, len(s.state.Tasks))
	for i, t := range s.state.Tasks {
		out[i] = t.Clone()
	}
	return out
}

// Task returns a copy of the task with id.
func (s *Store) Task(id string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexTask(s.state.Tasks, id); i >= 0 {
		return s.state.Tasks[i].Clone(), true
	}
	return domain.Task{}, false
}

// AddTask appends a new task with a fresh id.
func (s *Store) AddTask(ctx context.Context, draft domain.TaskDraft) (domain.Task, error) {
	if err := draft.Validate(); err != nil {
		return domain.Task{}, s.reject(ctx, "add_task", "", err)
	}
	task := draft.Build(s.newID(), s.newID)
	err := s.mutate(ctx, "add_task", task.ID, func(next *domain.Snapshot) bool {
		next.Tasks = append(next.Tasks, task)
		return true
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task.Clone(), nil
}

// UpdateTask merges patch into the task. Unknown ids are a no-op.
func (s *Store) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) error {
	if err := patch.Validate(); err != nil {
		return s.reject(ctx, "update_task", id, err)
	}
	return s.mutate(ctx, "update_task", id, func(next *domain.Snapshot) bool {
		return withTask(next, id, func(t *domain.Task) {
			patch.Apply(t)
		})
	})
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete_task", id, func(next *domain.Snapshot) bool {
		i := indexTask(next.Tasks, id)
		if i < 0 {
			return false
		}
		next.Tasks = append(next.Tasks[:i], next.Tasks[i+1:]...)
		return true
	})
}

// CompleteTask forces status to completed and touches nothing else.
func (s *Store) CompleteTask(ctx context.Context, id string) error {
	return s.mutate(ctx, "complete_task", id, func(next *domain.Snapshot) bool {
		return withTask(next, id, func(t *domain.Task) {
			t.Status = domain.StatusCompleted
		})
	})
}

// AddSubTask appends an incomplete subtask and returns its id, or "" when
// the task does not exist.
func (s *Store) AddSubTask(ctx context.Context, taskID, title string) (string, error) {
	if err := domain.ValidateSubTaskTitle(title); err != nil {
		return "", s.reject(ctx, "add_subtask", taskID, err)
	}
	sub := domain.SubTask{ID: s.newID(), Title: strings.TrimSpace(title)}
	found := false
	err := s.mutate(ctx, "add_subtask", taskID, func(next *domain.Snapshot) bool {
		found = withTask(next, taskID, func(t *domain.Task) {
			t.SubTasks = append(t.SubTasks, sub)
		})
		return found
	})
	if err != nil || !found {
		return "", err
	}
	return sub.ID, nil
}

// ToggleSubTask flips the completed flag. Applying it twice restores the
// original flag.
func (s *Store) ToggleSubTask(ctx context.Context, taskID, subTaskID string) error {
	return s.mutate(ctx, "toggle_subtask", subTaskID, func(next *domain.Snapshot) bool {
		hit := false
		withTask(next, taskID, func(t *domain.Task) {
			for i := range t.SubTasks {
				if t.SubTasks[i].ID == subTaskID {
					t.SubTasks[i].Completed = !t.SubTasks[i].Completed
					hit = true
				}
			}
		})
		return hit
	})
}

func (s *Store) DeleteSubTask(ctx context.Context, taskID, subTaskID string) error {
	return s.mutate(ctx, "delete_subtask", subTaskID, func(next *domain.Snapshot) bool {
		hit := false
		withTask(next, taskID, func(t *domain.Task) {
			kept := t.SubTasks[:0]
			for _, st := range t.SubTasks {
				if st.ID == subTaskID {
					hit = true
					continue
				}
				kept = append(kept, st)
			}
			t.SubTasks = kept
		})
		return hit
	})
}

// AddAttachment attaches a file reference to the task and returns its id, or
// "" when the task does not exist.
func (s *Store) AddAttachment(ctx context.Context, taskID string, a domain.Attachment) (string, error) {
	if err := a.Validate(); err != nil {
		return "", s.reject(ctx, "add_attachment", taskID, err)
	}
	a.ID = s.newID()
	found := false
	err := s.mutate(ctx, "add_attachment", taskID, func(next *domain.Snapshot) bool {
		found = withTask(next, taskID, func(t *domain.Task) {
			t.Attachments = append(t.Attachments, a)
		})
		return found
	})
	if err != nil || !found {
		return "", err
	}
	return a.ID, nil
}

func (s *Store) RemoveAttachment(ctx context.Context, taskID, attachmentID string) error {
	return s.mutate(ctx, "remove_attachment", attachmentID, func(next *domain.Snapshot) bool {
		hit := false
		withTask(next, taskID, func(t *domain.Task) {
			kept := t.Attachments[:0]
			for _, a := range t.Attachments {
				if a.ID == attachmentID {
					hit = true
					continue
				}
				kept = append(kept, a)
			}
			t.Attachments = kept
		})
		return hit
	})
}

func indexTask(tasks []domain.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// withTask runs fn on the task with id and reports whether it exists.
func withTask(next *domain.Snapshot, id string, fn func(t *domain.Task)) bool {
	i := indexTask(next.Tasks, id)
	if i < 0 {
		return false
	}
	fn(&next.Tasks[i])
	return true
}
