// Package store is the single owner of the local user, task, note and event
// collections. Every mutation is synchronous, runs under one lock and is
// persisted as a full snapshot before it becomes visible.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kampus/tugasin/internal/domain"
	"github.com/kampus/tugasin/internal/repository"
)

// Store is an injectable state container. The zero value is not usable; use
// New or Open.
type Store struct {
	mu       sync.Mutex
	state    domain.Snapshot
	repo     repository.SnapshotRepo
	now      func() time.Time
	newID    func() string
	observer MutationObserver
}

// Option configures a Store built by New or Open.
type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithObserver reports every mutation to o. A nil observer is ignored.
func WithObserver(o MutationObserver) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// New wraps an initial state. Nothing is written until the first mutation.
func New(repo repository.SnapshotRepo, initial domain.Snapshot, opts ...Option) *Store {
	s := &Store{
		state:    normalize(initial.Clone()),
		repo:     repo,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		observer: NoopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the persisted snapshot. On first run it seeds the sample data and
// writes it so the next start sees the same ids. A snapshot that no longer
// decodes is replaced by fresh sample data and reported to the observer with
// op "recover_snapshot".
func Open(ctx context.Context, repo repository.SnapshotRepo, opts ...Option) (*Store, error) {
	snap, err := repo.Load(ctx)
	switch {
	case err == nil:
		return New(repo, *snap, opts...), nil
	case errors.Is(err, repository.ErrNotFound):
		return seed(ctx, repo, opts)
	case errors.Is(err, repository.ErrCorruptRecord):
		s, seedErr := seed(ctx, repo, opts)
		if seedErr != nil {
			return nil, seedErr
		}
		s.observer.ObserveMutation(ctx, MutationEvent{Op: "recover_snapshot", Applied: true, Err: err})
		return s, nil
	default:
		return nil, fmt.Errorf("loading store snapshot: %w", err)
	}
}

func seed(ctx context.Context, repo repository.SnapshotRepo, opts []Option) (*Store, error) {
	s := New(repo, domain.Snapshot{}, opts...)
	s.state = SampleSnapshot(s.now(), s.newID)
	if err := repo.Save(ctx, &s.state); err != nil {
		return nil, fmt.Errorf("seeding store snapshot: %w", err)
	}
	return s, nil
}

// normalize replaces nil collections so the persisted JSON always carries
// arrays.
func normalize(s domain.Snapshot) domain.Snapshot {
	if s.Tasks == nil {
		s.Tasks = []domain.Task{}
	}
	if s.Notes == nil {
		s.Notes = []domain.Note{}
	}
	if s.Events == nil {
		s.Events = []domain.CalendarEvent{}
	}
	if s.User.Theme == "" {
		s.User.Theme = domain.ThemeLight
	}
	return s
}

// mutate runs fn on a copy of the state. If fn reports a change the copy is
// persisted and then swapped in; a failed save leaves the old state in place.
// fn returning false is the silent not-found case.
func (s *Store) mutate(ctx context.Context, op, id string, fn func(next *domain.Snapshot) bool) error {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	applied := fn(&next)

	var err error
	if applied {
		if err = s.repo.Save(ctx, &next); err != nil {
			err = fmt.Errorf("%s: persisting snapshot: %w", op, err)
		} else {
			s.state = next
		}
	}

	s.observer.ObserveMutation(ctx, MutationEvent{
		Op:       op,
		ID:       id,
		Applied:  applied && err == nil,
		Duration: time.Since(start),
		Err:      err,
	})
	return err
}

// reject reports a validation failure to the observer and returns it.
func (s *Store) reject(ctx context.Context, op, id string, err error) error {
	s.observer.ObserveMutation(ctx, MutationEvent{Op: op, ID: id, Err: err})
	return err
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) User() domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.User.Clone()
}

// UpdateUser merges the patch into the profile.
func (s *Store) UpdateUser(ctx context.Context, patch domain.UserPatch) error {
	if err := patch.Validate(); err != nil {
		return s.reject(ctx, "update_user", "", err)
	}
	return s.mutate(ctx, "update_user", "", func(next *domain.Snapshot) bool {
		patch.Apply(&next.User)
		return true
	})
}

// ToggleTheme flips light and dark and returns the new theme.
func (s *Store) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	var theme domain.Theme
	err := s.mutate(ctx, "toggle_theme", "", func(next *domain.Snapshot) bool {
		next.User.Theme = next.User.Theme.Toggle()
		theme = next.User.Theme
		return true
	})
	if err != nil {
		return s.User().Theme, err
	}
	return theme, nil
}
