package domain

// Snapshot is the whole persisted state of the local store, written as one
// durable record.
type Snapshot struct {
	User   User            `json:"user"`
	Tasks  []Task          `json:"tasks"`
	Notes  []Note          `json:"notes"`
	Events []CalendarEvent `json:"events"`
}

// Clone deep-copies every collection.
func (s Snapshot) Clone() Snapshot {
	c := Snapshot{
		User:   s.User.Clone(),
		Tasks:  make([]Task, len(s.Tasks)),
		Notes:  make([]Note, len(s.Notes)),
		Events: make([]CalendarEvent, len(s.Events)),
	}
	for i, t := range s.Tasks {
		c.Tasks[i] = t.Clone()
	}
	for i, n := range s.Notes {
		c.Notes[i] = n.Clone()
	}
	for i, e := range s.Events {
		c.Events[i] = e.Clone()
	}
	return c
}
