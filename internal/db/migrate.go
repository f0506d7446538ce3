package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies every schema statement. Each one is idempotent, so
// Migrate is safe to run on an existing database.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id             TEXT PRIMARY KEY,
		title          TEXT NOT NULL DEFAULT '',
		engineer       TEXT NOT NULL DEFAULT '',
		type           TEXT NOT NULL
		               CHECK(type IN ('maintenance','installation','safety','upgrade','testing','construction')),
		duration_days  INTEGER NOT NULL CHECK(duration_days > 0),
		description    TEXT NOT NULL DEFAULT '',
		priority       TEXT NOT NULL DEFAULT 'medium'
		               CHECK(priority IN ('low','medium','high','urgent')),
		zone_name      TEXT NOT NULL DEFAULT '',
		view_id        TEXT NOT NULL,
		start_date     TEXT NOT NULL,
		end_date       TEXT NOT NULL,
		status         TEXT NOT NULL DEFAULT 'active'
		               CHECK(status IN ('active','completed')),
		created_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_view ON projects(view_id)`,

	// One row per (cell, project). id preserves insertion order within a cell.
	`CREATE TABLE IF NOT EXISTS project_cells (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		view_id     TEXT NOT NULL,
		x           INTEGER NOT NULL CHECK(x >= 0 AND x < 40),
		y           INTEGER NOT NULL CHECK(y >= 0 AND y < 25),
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		UNIQUE(view_id, x, y, project_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_project_cells_cell ON project_cells(view_id, x, y)`,
	`CREATE INDEX IF NOT EXISTS idx_project_cells_project ON project_cells(project_id)`,

	`CREATE TABLE IF NOT EXISTS overlay_ops (
		seq                   INTEGER PRIMARY KEY,
		kind                  TEXT NOT NULL CHECK(kind IN ('add','modify','delete')),
		original_name         TEXT NOT NULL DEFAULT '',
		add_id                TEXT NOT NULL DEFAULT '',
		name                  TEXT NOT NULL DEFAULT '',
		x                     INTEGER NOT NULL DEFAULT 0,
		y                     INTEGER NOT NULL DEFAULT 0,
		width                 INTEGER NOT NULL DEFAULT 0,
		height                INTEGER NOT NULL DEFAULT 0,
		clickable             INTEGER NOT NULL DEFAULT 0,
		navigation_target     TEXT NOT NULL DEFAULT '',
		background_image_ref  TEXT NOT NULL DEFAULT ''
	)`,
}
