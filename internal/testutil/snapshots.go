package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/kampus/tugasin/internal/domain"
	"github.com/kampus/tugasin/internal/repository"
)

// MemorySnapshots is an in-memory SnapshotRepo that counts saves and can be
// told to fail the next save.
type MemorySnapshots struct {
	mu       sync.Mutex
	snapshot *domain.Snapshot
	saves    int
	failNext error
}

var _ repository.SnapshotRepo = (*MemorySnapshots)(nil)

func NewMemorySnapshots() *MemorySnapshots {
	return &MemorySnapshots{}
}

func (m *MemorySnapshots) Load(context.Context) (*domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot == nil {
		return nil, fmt.Errorf("snapshot: %w", repository.ErrNotFound)
	}
	c := m.snapshot.Clone()
	return &c, nil
}

func (m *MemorySnapshots) Save(_ context.Context, s *domain.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	c := s.Clone()
	m.snapshot = &c
	m.saves++
	return nil
}

// FailNextSave makes the next Save return err without storing anything.
func (m *MemorySnapshots) FailNextSave(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}

// Saves returns the number of successful saves.
func (m *MemorySnapshots) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Last returns a copy of the last saved snapshot, or nil.
func (m *MemorySnapshots) Last() *domain.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot == nil {
		return nil
	}
	c := m.snapshot.Clone()
	return &c
}
