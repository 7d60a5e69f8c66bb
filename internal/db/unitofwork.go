package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is the slice of *sql.DB and *sql.Tx the record repositories use.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// UnitOfWork groups record writes so they land together or not at all.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// TxOption configures a SQLiteUnitOfWork.
type TxOption func(*SQLiteUnitOfWork)

// WithTxWrapper hands fn a wrapped transaction. Tests use it to inject
// statement failures.
func WithTxWrapper(wrap func(DBTX) DBTX) TxOption {
	return func(u *SQLiteUnitOfWork) { u.wrap = wrap }
}

type SQLiteUnitOfWork struct {
	db   *sql.DB
	wrap func(DBTX) DBTX
}

func NewSQLiteUnitOfWork(db *sql.DB, opts ...TxOption) *SQLiteUnitOfWork {
	u := &SQLiteUnitOfWork{db: db}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// WithinTx commits when fn returns nil. An error or a panic from fn
// rolls the transaction back.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) && err != nil {
			err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
	}()

	var conn DBTX = tx
	if u.wrap != nil {
		conn = u.wrap(tx)
	}
	if err := fn(ctx, conn); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	committed = true
	return nil
}
