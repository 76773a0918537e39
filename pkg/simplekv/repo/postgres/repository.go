package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-kv/pkg/simplekv"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements simplekv.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) simplekv.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) simplekv.Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("duplicate entry in %s", operation)
		case "23503": // foreign_key_violation
			return simplekv.ErrProjectNotFound
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Project operations

func (r *Repository) CreateProject(ctx context.Context, project *simplekv.Project) error {
	query := `INSERT INTO projects (id) VALUES ($1)`

	_, err := r.db.Exec(ctx, query, project.ID)
	if err != nil {
		return r.handlePostgresError("create project", err)
	}

	return nil
}

func (r *Repository) EnsureProject(ctx context.Context, projectID uuid.UUID) error {
	// Upsert-or-ignore: concurrent first writes to the same new project
	// must not conflict.
	query := `INSERT INTO projects (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`

	_, err := r.db.Exec(ctx, query, projectID)
	if err != nil {
		return r.handlePostgresError("ensure project", err)
	}

	return nil
}

// Entry operations

func (r *Repository) GetEntry(ctx context.Context, projectID uuid.UUID, key string) (*simplekv.Entry, error) {
	query := `
		SELECT mime_type, content, updated_at
		FROM entries
		WHERE project_id = $1 AND key = $2`

	entry := simplekv.Entry{ProjectID: projectID, Key: key}
	err := r.db.QueryRow(ctx, query, projectID, key).Scan(
		&entry.MimeType, &entry.Content, &entry.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplekv.ErrEntryNotFound
		}
		return nil, r.handlePostgresError("get entry", err)
	}

	return &entry, nil
}

func (r *Repository) ListEntries(ctx context.Context, projectID uuid.UUID) ([]simplekv.EntryInfo, error) {
	// COLLATE "C" forces byte ordering regardless of the database locale.
	query := `
		SELECT key, mime_type
		FROM entries
		WHERE project_id = $1
		ORDER BY key COLLATE "C"`

	return r.queryEntryInfos(ctx, "list entries", query, projectID)
}

func (r *Repository) ListEntriesByPrefix(ctx context.Context, projectID uuid.UUID, prefix string) ([]simplekv.EntryInfo, error) {
	query := `
		SELECT key, mime_type
		FROM entries
		WHERE project_id = $1 AND key LIKE $2
		ORDER BY key COLLATE "C"`

	pattern := escapeLikePrefix(prefix) + "%"
	return r.queryEntryInfos(ctx, "list entries by prefix", query, projectID, pattern)
}

func (r *Repository) queryEntryInfos(ctx context.Context, operation, query string, args ...interface{}) ([]simplekv.EntryInfo, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handlePostgresError(operation, err)
	}
	defer rows.Close()

	infos := []simplekv.EntryInfo{}
	for rows.Next() {
		var info simplekv.EntryInfo
		if err := rows.Scan(&info.Key, &info.MimeType); err != nil {
			return nil, r.handlePostgresError(operation, err)
		}
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError(operation, err)
	}

	return infos, nil
}

func (r *Repository) UpsertEntry(ctx context.Context, entry *simplekv.Entry) error {
	// A single statement so concurrent writes to the same key serialize to
	// one full write winning; no half-written state is ever visible.
	query := `
		INSERT INTO entries (project_id, key, mime_type, content, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (project_id, key)
		DO UPDATE SET
			mime_type = EXCLUDED.mime_type,
			content = EXCLUDED.content,
			updated_at = NOW()`

	_, err := r.db.Exec(ctx, query, entry.ProjectID, entry.Key, entry.MimeType, entry.Content)
	if err != nil {
		return r.handlePostgresError("upsert entry", err)
	}

	return nil
}

func (r *Repository) DeleteEntry(ctx context.Context, projectID uuid.UUID, key string) error {
	query := `DELETE FROM entries WHERE project_id = $1 AND key = $2`

	tag, err := r.db.Exec(ctx, query, projectID, key)
	if err != nil {
		return r.handlePostgresError("delete entry", err)
	}

	if tag.RowsAffected() == 0 {
		return simplekv.ErrEntryNotFound
	}

	return nil
}
