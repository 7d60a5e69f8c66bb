package repository

import (
	"context"

	"github.com/kampus/tugasin/internal/domain"
)

// RecordSnapshotRepo persists the store snapshot as the SnapshotRecord.
type RecordSnapshotRepo struct {
	records RecordRepo
}

func NewSnapshotRepo(records RecordRepo) *RecordSnapshotRepo {
	return &RecordSnapshotRepo{records: records}
}

func (r *RecordSnapshotRepo) Load(ctx context.Context) (*domain.Snapshot, error) {
	var s domain.Snapshot
	if err := loadJSON(ctx, r.records, SnapshotRecord, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RecordSnapshotRepo) Save(ctx context.Context, s *domain.Snapshot) error {
	return saveJSON(ctx, r.records, SnapshotRecord, s)
}
