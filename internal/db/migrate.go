package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the full
// list is replayed on every open.
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
	`CREATE TABLE IF NOT EXISTS project_types (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS milestone_project_types (
		milestone_id    TEXT NOT NULL REFERENCES milestones(id) ON DELETE CASCADE,
		project_type_id TEXT NOT NULL REFERENCES project_types(id) ON DELETE RESTRICT,
		PRIMARY KEY (milestone_id, project_type_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_milestone_project_types_type
		ON milestone_project_types(project_type_id)`,

	`CREATE TABLE IF NOT EXISTS sub_milestones (
		id           TEXT PRIMARY KEY,
		milestone_id TEXT NOT NULL REFERENCES milestones(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		order_index  INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sub_milestones_milestone
		ON sub_milestones(milestone_id, order_index)`,

	`CREATE TABLE IF NOT EXISTS clients (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL,
		client_id          TEXT NOT NULL,
		manager_id         TEXT NOT NULL,
		project_type_id    TEXT NOT NULL REFERENCES project_types(id) ON DELETE RESTRICT,
		start_date         TEXT NOT NULL,
		estimated_end_date TEXT NOT NULL,
		status             TEXT NOT NULL DEFAULT 'On Track'
		                   CHECK(status IN ('On Track','At Risk','Off Track','On Hold','Completed')),
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_manager ON projects(manager_id)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id)`,

	`CREATE TABLE IF NOT EXISTS project_milestones (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		milestone_id TEXT NOT NULL REFERENCES milestones(id) ON DELETE RESTRICT,
		start_date   TEXT NOT NULL,
		end_date     TEXT NOT NULL,
		UNIQUE (project_id, milestone_id)
	)`,

	`CREATE TABLE IF NOT EXISTS weekly_reports (
		id                       TEXT PRIMARY KEY,
		project_id               TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		week                     INTEGER NOT NULL CHECK(week >= 1),
		progress                 INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
		summary                  TEXT NOT NULL,
		status                   TEXT NOT NULL
		                         CHECK(status IN ('On Track','At Risk','Off Track')),
		completed_sub_milestones TEXT NOT NULL DEFAULT '[]',
		created_at               TEXT NOT NULL,
		updated_at               TEXT NOT NULL,
		UNIQUE (project_id, week)
	)`,
}
