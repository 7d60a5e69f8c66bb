package repository

import (
	"context"
	"fmt"

	"github.com/kampus/tugasin/internal/db"
)

// ResetAll drops the store snapshot and the session in one transaction, so a
// failed reset never leaves a session pointing at wiped local state.
func ResetAll(ctx context.Context, uow db.UnitOfWork) error {
	return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		records := NewSQLiteRecordRepo(tx)
		for _, name := range []string{SnapshotRecord, SessionRecord} {
			if err := records.Delete(ctx, name); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
		}
		return nil
	})
}
