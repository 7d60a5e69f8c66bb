package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	minTaskTitleLen = 2
	maxTaskTitleLen = 100
)

type SubTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     time.Time    `json:"dueDate"`
	Priority    TaskPriority `json:"priority"`
	Category    TaskCategory `json:"category"`
	Status      TaskStatus   `json:"status"`
	SubTasks    []SubTask    `json:"subTasks"`
	Attachments []Attachment `json:"attachments"`
	Tags        []string     `json:"tags"`
}

// IsCompleted reports whether the task status is completed.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Clone returns a deep copy so callers never alias store-owned slices.
func (t Task) Clone() Task {
	c := t
	c.SubTasks = append([]SubTask(nil), t.SubTasks...)
	c.Attachments = append([]Attachment(nil), t.Attachments...)
	c.Tags = append([]string(nil), t.Tags...)
	if c.SubTasks == nil {
		c.SubTasks = []SubTask{}
	}
	if c.Attachments == nil {
		c.Attachments = []Attachment{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return c
}

// TaskDraft is the payload for creating a task. Empty priority, category and
// status fall back to medium, academic and pending.
type TaskDraft struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    TaskPriority
	Category    TaskCategory
	Status      TaskStatus
	SubTasks    []SubTask
	Attachments []Attachment
	Tags        []string
}

// Validate checks the draft after defaults are applied.
func (d TaskDraft) Validate() error {
	d = d.withDefaults()
	if err := validateTaskTitle(d.Title); err != nil {
		return err
	}
	if d.DueDate.IsZero() {
		return invalid("dueDate", "due date is required")
	}
	if !ValidPriorities[d.Priority] {
		return invalid("priority", "unknown priority %q", d.Priority)
	}
	if !ValidCategories[d.Category] {
		return invalid("category", "unknown category %q", d.Category)
	}
	if !ValidStatuses[d.Status] {
		return invalid("status", "unknown status %q", d.Status)
	}
	for _, st := range d.SubTasks {
		if strings.TrimSpace(st.Title) == "" {
			return invalid("subTasks", "subtask title is required")
		}
	}
	return nil
}

// Build turns the draft into a task with the given id. Subtasks and
// attachments without an id get one from newID.
func (d TaskDraft) Build(id string, newID func() string) Task {
	d = d.withDefaults()
	t := Task{
		ID:          id,
		Title:       strings.TrimSpace(d.Title),
		Description: d.Description,
		DueDate:     d.DueDate,
		Priority:    d.Priority,
		Category:    d.Category,
		Status:      d.Status,
		SubTasks:    make([]SubTask, 0, len(d.SubTasks)),
		Attachments: make([]Attachment, 0, len(d.Attachments)),
		Tags:        NormalizeTags(d.Tags),
	}
	for _, st := range d.SubTasks {
		if st.ID == "" {
			st.ID = newID()
		}
		t.SubTasks = append(t.SubTasks, st)
	}
	for _, a := range d.Attachments {
		if a.ID == "" {
			a.ID = newID()
		}
		t.Attachments = append(t.Attachments, a)
	}
	return t
}

func (d TaskDraft) withDefaults() TaskDraft {
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if d.Category == "" {
		d.Category = CategoryAcademic
	}
	if d.Status == "" {
		d.Status = StatusPending
	}
	return d
}

// TaskPatch lists the task fields an update may change. Nil fields are left
// untouched; subtasks and attachments have their own operations.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *TaskPriority
	Category    *TaskCategory
	Status      *TaskStatus
	Tags        *[]string
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil &&
		p.Priority == nil && p.Category == nil && p.Status == nil && p.Tags == nil
}

func (p TaskPatch) Validate() error {
	if p.Title != nil {
		if err := validateTaskTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.DueDate != nil && p.DueDate.IsZero() {
		return invalid("dueDate", "due date is required")
	}
	if p.Priority != nil && !ValidPriorities[*p.Priority] {
		return invalid("priority", "unknown priority %q", *p.Priority)
	}
	if p.Category != nil && !ValidCategories[*p.Category] {
		return invalid("category", "unknown category %q", *p.Category)
	}
	if p.Status != nil && !ValidStatuses[*p.Status] {
		return invalid("status", "unknown status %q", *p.Status)
	}
	return nil
}

// Apply merges the patch into t. The patch must already be validated.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Tags != nil {
		t.Tags = NormalizeTags(*p.Tags)
	}
}

// ValidateSubTaskTitle checks a subtask title before it is added.
func ValidateSubTaskTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return invalid("title", "subtask title is required")
	}
	return nil
}

// Validate checks an attachment before it is added to a task.
func (a Attachment) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return invalid("name", "attachment name is required")
	}
	if strings.TrimSpace(a.URL) == "" {
		return invalid("url", "attachment url is required")
	}
	return nil
}

func validateTaskTitle(title string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	if n < minTaskTitleLen {
		return invalid("title", "title must be at least %d characters", minTaskTitleLen)
	}
	if n > maxTaskTitleLen {
		return invalid("title", "title must be at most %d characters", maxTaskTitleLen)
	}
	return nil
}
