package db

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent and re-run in full on every open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS artifacts (
		key        TEXT PRIMARY KEY,
		type       TEXT NOT NULL DEFAULT '',
		content    BLOB NOT NULL,
		version    INTEGER NOT NULL DEFAULT 1,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_artifacts_type ON artifacts(type)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
