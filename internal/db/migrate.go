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
	`CREATE TABLE IF NOT EXISTS plans (
		id          TEXT PRIMARY KEY,
		short_id    TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		start_date  TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','paused','done','archived')),
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plan_items (
		id            TEXT PRIMARY KEY,
		plan_id       TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		title         TEXT NOT NULL,
		sort_order    INTEGER NOT NULL DEFAULT 0,
		duration_days INTEGER NOT NULL DEFAULT 0 CHECK(duration_days >= 0),
		start_date    TEXT,
		finish_date   TEXT,
		pinned        INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_items_plan
		ON plan_items(plan_id, sort_order)`,

	// Edges are owned by the dependent item; the primary key enforces the
	// one-edge-per-pair invariant and the CHECK rejects self-loops at the
	// storage layer as a last line of defense.
	`CREATE TABLE IF NOT EXISTS predecessor_edges (
		item_id        TEXT NOT NULL REFERENCES plan_items(id) ON DELETE CASCADE,
		predecessor_id TEXT NOT NULL REFERENCES plan_items(id) ON DELETE CASCADE,
		dep_type       TEXT NOT NULL DEFAULT 'FS'
		               CHECK(dep_type IN ('FS','SS','FF','SF')),
		lag_days       INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		PRIMARY KEY (item_id, predecessor_id),
		CHECK (item_id <> predecessor_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_edges_predecessor
		ON predecessor_edges(predecessor_id)`,
}
