package postgres

import (
	"context"
	"fmt"
)

// Schema statements for the two tables owned by this store. Entries carry a
// composite primary key on (project_id, key) and reference projects so no
// entry row can exist without its project row.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS entries (
		project_id UUID NOT NULL REFERENCES projects (id),
		key TEXT NOT NULL,
		mime_type TEXT NOT NULL,
		content BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (project_id, key)
	)`,
}

// Migrate creates the projects and entries tables if they do not exist.
func Migrate(ctx context.Context, db DBTX) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
