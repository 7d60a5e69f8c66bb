package repository

import (
	"context"

	"github.com/kampus/tugasin/internal/domain"
)

// RecordSessionRepo persists the authenticated session as the SessionRecord.
type RecordSessionRepo struct {
	records RecordRepo
}

func NewSessionRepo(records RecordRepo) *RecordSessionRepo {
	return &RecordSessionRepo{records: records}
}

func (r *RecordSessionRepo) Get(ctx context.Context) (*domain.Session, error) {
	var s domain.Session
	if err := loadJSON(ctx, r.records, SessionRecord, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RecordSessionRepo) Save(ctx context.Context, s *domain.Session) error {
	return saveJSON(ctx, r.records, SessionRecord, s)
}

func (r *RecordSessionRepo) Clear(ctx context.Context) error {
	return r.records.Delete(ctx, SessionRecord)
}
