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

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS completion_states (
		scope_key  TEXT PRIMARY KEY,
		state_json TEXT NOT NULL DEFAULT '{}',
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS destinations (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		country    TEXT NOT NULL DEFAULT '',
		popular    INTEGER NOT NULL DEFAULT 0,
		image_url  TEXT,
		created_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_destinations_name ON destinations(name COLLATE NOCASE)`,

	`CREATE TABLE IF NOT EXISTS travel_plans (
		destination_id TEXT NOT NULL REFERENCES destinations(id) ON DELETE CASCADE,
		tier           TEXT NOT NULL
		               CHECK(tier IN ('backpacker','travelEnthusiast','luxury')),
		plan_json      TEXT NOT NULL,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL,
		PRIMARY KEY (destination_id, tier)
	)`,

	`CREATE TABLE IF NOT EXISTS trips (
		id                  TEXT PRIMARY KEY,
		destination         TEXT NOT NULL,
		start_date          TEXT NOT NULL,
		end_date            TEXT NOT NULL,
		travelers           INTEGER NOT NULL CHECK(travelers >= 1),
		selected_budget     TEXT NOT NULL
		                    CHECK(selected_budget IN ('backpacker','travelEnthusiast','luxury')),
		completed_json      TEXT NOT NULL DEFAULT '{}',
		share_token         TEXT NOT NULL,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_trips_share_token ON trips(share_token)`,

	// Added after the first release; older databases lack the column.
	`ALTER TABLE trips ADD COLUMN user_email TEXT`,
}
