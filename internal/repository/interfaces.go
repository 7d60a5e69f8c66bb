package repository

import (
	"context"
	"errors"

	"github.com/kampus/tugasin/internal/domain"
)

// ErrNotFound is returned when a named record has never been written or was
// cleared.
var ErrNotFound = errors.New("record not found")

// ErrCorruptRecord is returned when a stored record is not valid JSON for
// its type.
var ErrCorruptRecord = errors.New("corrupt record")

const (
	// SnapshotRecord holds the entire local store (user, tasks, notes, events).
	SnapshotRecord = "kampus-task-master"
	// SessionRecord holds the authenticated remote session.
	SessionRecord = "user"
)

// RecordRepo stores opaque named JSON documents.
type RecordRepo interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
	Revision(ctx context.Context, name string) (int, error)
}

type SnapshotRepo interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, s *domain.Snapshot) error
}

type SessionRepo interface {
	Get(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	Clear(ctx context.Context) error
}
