package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// records holds named durable documents: the store snapshot and the
// authenticated session. data is the JSON encoding of the document.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS records (
		name       TEXT PRIMARY KEY,
		data       TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`ALTER TABLE records ADD COLUMN revision INTEGER NOT NULL DEFAULT 0`,

	`CREATE INDEX IF NOT EXISTS idx_records_updated ON records(updated_at)`,
}
