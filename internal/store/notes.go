package store

import (
	"context"

	"github.com/kampus/tugasin/internal/domain"
)

func (s *Store) Notes() []domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Note, len(s.state.Notes))
	for i, n := range s.state.Notes {
		out[i] = n.Clone()
	}
	return out
}

func (s *Store) Note(id string) (domain.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.state.Notes {
		if n.ID == id {
			return n.Clone(), true
		}
	}
	return domain.Note{}, false
}

// AddNote creates a note whose createdAt and updatedAt are the same instant.
func (s *Store) AddNote(ctx context.Context, draft domain.NoteDraft) (domain.Note, error) {
	if err := draft.Validate(); err != nil {
		return domain.Note{}, s.reject(ctx, "add_note", "", err)
	}
	note := draft.Build(s.newID(), s.now())
	err := s.mutate(ctx, "add_note", note.ID, func(next *domain.Snapshot) bool {
		next.Notes = append(next.Notes, note)
		return true
	})
	if err != nil {
		return domain.Note{}, err
	}
	return note.Clone(), nil
}

// UpdateNote merges patch and refreshes updatedAt. Unknown ids are a no-op.
func (s *Store) UpdateNote(ctx context.Context, id string, patch domain.NotePatch) error {
	if err := patch.Validate(); err != nil {
		return s.reject(ctx, "update_note", id, err)
	}
	return s.mutate(ctx, "update_note", id, func(next *domain.Snapshot) bool {
		for i := range next.Notes {
			if next.Notes[i].ID == id {
				patch.Apply(&next.Notes[i], s.now())
				return true
			}
		}
		return false
	})
}

func (s *Store) DeleteNote(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete_note", id, func(next *domain.Snapshot) bool {
		for i := range next.Notes {
			if next.Notes[i].ID == id {
				next.Notes = append(next.Notes[:i], next.Notes[i+1:]...)
				return true
			}
		}
		return false
	})
}
