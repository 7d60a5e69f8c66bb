package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kampus/tugasin/internal/db"
)

// SQLiteRecordRepo implements RecordRepo on the records table.
type SQLiteRecordRepo struct {
	db db.DBTX
}

// NewSQLiteRecordRepo creates a new SQLiteRecordRepo.
func NewSQLiteRecordRepo(conn db.DBTX) *SQLiteRecordRepo {
	return &SQLiteRecordRepo{db: conn}
}

func (r *SQLiteRecordRepo) Get(ctx context.Context, name string) ([]byte, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM records WHERE name = ?`, name).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("reading record %s: %w", name, err)
	}
	return []byte(data), nil
}

// Put upserts the record and bumps its revision.
func (r *SQLiteRecordRepo) Put(ctx context.Context, name string, data []byte) error {
	query := `INSERT INTO records (name, data, updated_at, revision) VALUES (?, ?, ?, 1)
		ON CONFLICT(name) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at,
			revision = records.revision + 1`
	if _, err := r.db.ExecContext(ctx, query, name, string(data), nowUTC()); err != nil {
		return fmt.Errorf("writing record %s: %w", name, err)
	}
	return nil
}

// Delete removes the record. Deleting a missing record is not an error.
func (r *SQLiteRecordRepo) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE name = ?`, name); err != nil {
		return fmt.Errorf("deleting record %s: %w", name, err)
	}
	return nil
}

// Revision returns how many times the record has been written, or 0 if it
// does not exist.
func (r *SQLiteRecordRepo) Revision(ctx context.Context, name string) (int, error) {
	var rev int
	err := r.db.QueryRowContext(ctx, `SELECT revision FROM records WHERE name = ?`, name).Scan(&rev)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading revision of %s: %w", name, err)
	}
	return rev, nil
}
