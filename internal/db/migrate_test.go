package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesRecordsTable(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='records'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "records", name)

	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_records_updated'`).Scan(&name)
	require.NoError(t, err)
}

func TestMigrate_RevisionColumnDefaultsToZero(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO records (name, data, updated_at) VALUES ('k', '{}', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	var rev int
	require.NoError(t, db.QueryRow(`SELECT revision FROM records WHERE name = 'k'`).Scan(&rev))
	assert.Equal(t, 0, rev)
}

func TestMigrate_UpgradesLegacyRecordsTable(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE records (
		name       TEXT PRIMARY KEY,
		data       TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO records (name, data, updated_at) VALUES ('user', '{"_id":"u1"}', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var data string
	var rev int
	require.NoError(t, db.QueryRow(`SELECT data, revision FROM records WHERE name = 'user'`).Scan(&data, &rev))
	assert.Equal(t, `{"_id":"u1"}`, data)
	assert.Equal(t, 0, rev)
}

func TestOpenDB_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}
