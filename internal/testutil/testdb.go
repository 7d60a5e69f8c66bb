package testutil

import (
	"database/sql"
	"testing"

	"github.com/kampus/tugasin/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB returns a migrated in-memory database closed at test cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func NewTestUoW(conn *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(conn)
}
