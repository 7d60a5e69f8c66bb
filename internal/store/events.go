package store

import (
	"context"

	"github.com/kampus/tugasin/internal/domain"
)

func (s *Store) Events() []domain.CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CalendarEvent, len(s.state.Events))
	for i, e := range s.state.Events {
		out[i] = e.Clone()
	}
	return out
}

// AddEvent creates a calendar event. The task back-reference is not checked.
func (s *Store) AddEvent(ctx context.Context, draft domain.EventDraft) (domain.CalendarEvent, error) {
	if err := draft.Validate(); err != nil {
		return domain.CalendarEvent{}, s.reject(ctx, "add_event", "", err)
	}
	event := draft.Build(s.newID())
	err := s.mutate(ctx, "add_event", event.ID, func(next *domain.Snapshot) bool {
		next.Events = append(next.Events, event)
		return true
	})
	if err != nil {
		return domain.CalendarEvent{}, err
	}
	return event.Clone(), nil
}

// UpdateEvent merges patch into the event. The merged event must still end
// no earlier than it starts.
func (s *Store) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) error {
	if current, ok := s.event(id); ok {
		if err := patch.ValidateAgainst(current); err != nil {
			return s.reject(ctx, "update_event", id, err)
		}
	}
	var raced error
	err := s.mutate(ctx, "update_event", id, func(next *domain.Snapshot) bool {
		for i := range next.Events {
			if next.Events[i].ID != id {
				continue
			}
			// Another update may have landed since the check above.
			if raced = patch.ValidateAgainst(next.Events[i]); raced != nil {
				return false
			}
			patch.Apply(&next.Events[i])
			return true
		}
		return false
	})
	if err != nil {
		return err
	}
	return raced
}

func (s *Store) event(id string) (domain.CalendarEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.state.Events {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return domain.CalendarEvent{}, false
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete_event", id, func(next *domain.Snapshot) bool {
		for i := range next.Events {
			if next.Events[i].ID == id {
				next.Events = append(next.Events[:i], next.Events[i+1:]...)
				return true
			}
		}
		return false
	})
}
