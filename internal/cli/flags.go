package cli

import (
	"time"

	"github.com/kampus/tugasin/internal/domain"
	"github.com/spf13/pflag"
)

// taskFlags are shared by "task add" and "task update".
type taskFlags struct {
	title    string
	desc     string
	due      string
	priority string
	category string
	status   string
	tags     string
	subtasks []string
}

func (f *taskFlags) register(fs *pflag.FlagSet, withSubtasks bool) {
	fs.StringVar(&f.title, "title", "", "Task title (2-100 characters)")
	fs.StringVar(&f.desc, "desc", "", "Description")
	fs.StringVar(&f.due, "due", "", "Due date (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
	fs.StringVar(&f.priority, "priority", "", "Priority: low, medium, high")
	fs.StringVar(&f.category, "category", "", "Category: academic, personal, organization")
	fs.StringVar(&f.status, "status", "", "Status: pending, in-progress, completed")
	fs.StringVar(&f.tags, "tags", "", "Comma-separated tags")
	if withSubtasks {
		fs.StringArrayVar(&f.subtasks, "subtask", nil, "Subtask title (repeatable)")
	}
}

func (f *taskFlags) draft(loc *time.Location) (domain.TaskDraft, error) {
	d := domain.TaskDraft{
		Title:       f.title,
		Description: f.desc,
		Priority:    domain.TaskPriority(f.priority),
		Category:    domain.TaskCategory(f.category),
		Status:      domain.TaskStatus(f.status),
		Tags:        domain.SplitTags(f.tags),
	}
	if f.due != "" {
		due, err := parseDue(f.due, loc)
		if err != nil {
			return domain.TaskDraft{}, err
		}
		d.DueDate = due
	}
	for _, title := range f.subtasks {
		d.SubTasks = append(d.SubTasks, domain.SubTask{Title: title})
	}
	return d, nil
}

// patch builds an update from the flags the user actually passed.
func (f *taskFlags) patch(fs *pflag.FlagSet, loc *time.Location) (domain.TaskPatch, error) {
	var p domain.TaskPatch
	if fs.Changed("title") {
		p.Title = &f.title
	}
	if fs.Changed("desc") {
		p.Description = &f.desc
	}
	if fs.Changed("due") {
		due, err := parseDue(f.due, loc)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		p.DueDate = &due
	}
	if fs.Changed("priority") {
		v := domain.TaskPriority(f.priority)
		p.Priority = &v
	}
	if fs.Changed("category") {
		v := domain.TaskCategory(f.category)
		p.Category = &v
	}
	if fs.Changed("status") {
		v := domain.TaskStatus(f.status)
		p.Status = &v
	}
	if fs.Changed("tags") {
		tags := domain.SplitTags(f.tags)
		p.Tags = &tags
	}
	return p, nil
}

// noteFlags are shared by "note add" and "note update".
type noteFlags struct {
	title    string
	content  string
	category string
	tags     string
}

func (f *noteFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "Note title")
	fs.StringVar(&f.content, "content", "", "Note body")
	fs.StringVar(&f.category, "category", "", "Category: academic, personal, organization")
	fs.StringVar(&f.tags, "tags", "", "Comma-separated tags")
}

func (f *noteFlags) draft() domain.NoteDraft {
	return domain.NoteDraft{
		Title:    f.title,
		Content:  f.content,
		Category: domain.TaskCategory(f.category),
		Tags:     domain.SplitTags(f.tags),
	}
}

func (f *noteFlags) patch(fs *pflag.FlagSet) domain.NotePatch {
	var p domain.NotePatch
	if fs.Changed("title") {
		p.Title = &f.title
	}
	if fs.Changed("content") {
		p.Content = &f.content
	}
	if fs.Changed("category") {
		v := domain.TaskCategory(f.category)
		p.Category = &v
	}
	if fs.Changed("tags") {
		tags := domain.SplitTags(f.tags)
		p.Tags = &tags
	}
	return p
}

// eventFlags are shared by "event add" and "event update".
type eventFlags struct {
	title  string
	start  string
	end    string
	allDay bool
	task   string
}

func (f *eventFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "Event title")
	fs.StringVar(&f.start, "start", "", "Start (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
	fs.StringVar(&f.end, "end", "", "End (YYYY-MM-DD or YYYY-MM-DD HH:MM); defaults to start")
	fs.BoolVar(&f.allDay, "all-day", false, "All-day event")
	fs.StringVar(&f.task, "task", "", "Linked task ID or prefix")
}

func (f *eventFlags) times(loc *time.Location) (start, end time.Time, err error) {
	if f.start != "" {
		if start, err = parseMoment(f.start, loc); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if f.end != "" {
		if end, err = parseMoment(f.end, loc); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}
