package domain

import (
	"strings"
	"time"
)

type CalendarEvent struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	AllDay bool      `json:"allDay"`
	TaskID *string   `json:"taskId,omitempty"`
}

func (e CalendarEvent) Clone() CalendarEvent {
	c := e
	if e.TaskID != nil {
		id := *e.TaskID
		c.TaskID = &id
	}
	return c
}

type EventDraft struct {
	Title  string
	Start  time.Time
	End    time.Time
	AllDay bool
	TaskID *string
}

func (d EventDraft) Validate() error {
	return validateEvent(d.Title, d.Start, d.End)
}

func (d EventDraft) Build(id string) CalendarEvent {
	return CalendarEvent{
		ID:     id,
		Title:  strings.TrimSpace(d.Title),
		Start:  d.Start,
		End:    d.End,
		AllDay: d.AllDay,
		TaskID: d.TaskID,
	}.Clone()
}

// EventPatch lists the event fields an update may change. ClearTaskID drops
// the task back-reference; it wins over TaskID.
type EventPatch struct {
	Title       *string
	Start       *time.Time
	End         *time.Time
	AllDay      *bool
	TaskID      *string
	ClearTaskID bool
}

// ValidateAgainst checks the patch merged over the current event, so a
// patch moving only End still has to land after the existing Start.
func (p EventPatch) ValidateAgainst(e CalendarEvent) error {
	merged := e.Clone()
	p.Apply(&merged)
	return validateEvent(merged.Title, merged.Start, merged.End)
}

func (p EventPatch) Apply(e *CalendarEvent) {
	if p.Title != nil {
		e.Title = strings.TrimSpace(*p.Title)
	}
	if p.Start != nil {
		e.Start = *p.Start
	}
	if p.End != nil {
		e.End = *p.End
	}
	if p.AllDay != nil {
		e.AllDay = *p.AllDay
	}
	if p.TaskID != nil {
		id := *p.TaskID
		e.TaskID = &id
	}
	if p.ClearTaskID {
		e.TaskID = nil
	}
}

func validateEvent(title string, start, end time.Time) error {
	if strings.TrimSpace(title) == "" {
		return invalid("title", "title is required")
	}
	if start.IsZero() {
		return invalid("start", "start is required")
	}
	if end.IsZero() {
		return invalid("end", "end is required")
	}
	if end.Before(start) {
		return invalid("end", "end must not be before start")
	}
	return nil
}
