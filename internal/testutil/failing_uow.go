package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/kampus/tugasin/internal/db"
)

// NewFailOnNthExecUoW returns a unit of work whose n-th write inside a
// transaction (counting from 1) fails with err. Reads are not counted.
func NewFailOnNthExecUoW(database *sql.DB, n int32, err error) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database, db.WithTxWrapper(func(tx db.DBTX) db.DBTX {
		return &failingExec{DBTX: tx, failOn: n, err: err}
	}))
}

type failingExec struct {
	db.DBTX
	writes atomic.Int32
	failOn int32
	err    error
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.writes.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
