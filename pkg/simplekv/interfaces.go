package simplekv

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for project and entry persistence.
//
// The backing store is the sole owner and durability boundary for both
// entities; implementations hold no authoritative in-memory copy beyond the
// store itself and submit each mutation as a single atomic operation.
type Repository interface {
	// CreateProject persists a newly allocated project identifier.
	CreateProject(ctx context.Context, project *Project) error

	// EnsureProject idempotently records that the project exists. Calling it
	// for an identifier that already exists is a no-op, not an error, so
	// concurrent first writes to the same new project never conflict.
	EnsureProject(ctx context.Context, projectID uuid.UUID) error

	// GetEntry returns the entry for (projectID, key), or ErrEntryNotFound.
	GetEntry(ctx context.Context, projectID uuid.UUID, key string) (*Entry, error)

	// ListEntries returns every entry under the project ordered by key,
	// ascending in byte order. An empty or unknown project yields an empty
	// result, not an error.
	ListEntries(ctx context.Context, projectID uuid.UUID) ([]EntryInfo, error)

	// ListEntriesByPrefix is ListEntries restricted to keys that literally
	// start with prefix. No character of prefix carries wildcard meaning.
	ListEntriesByPrefix(ctx context.Context, projectID uuid.UUID, prefix string) ([]EntryInfo, error)

	// UpsertEntry atomically creates the entry or fully replaces its mime
	// type and content. Implementations stamp updated_at on every write.
	// The project row must already exist.
	UpsertEntry(ctx context.Context, entry *Entry) error

	// DeleteEntry removes the entry for (projectID, key), returning
	// ErrEntryNotFound when no row was affected.
	DeleteEntry(ctx context.Context, projectID uuid.UUID, key string) error
}
