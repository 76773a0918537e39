package simplekv

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the main interface for the simple-kv library
type Service interface {
	// Project operations
	CreateProject(ctx context.Context) (*Project, error)

	// Entry operations
	GetEntry(ctx context.Context, projectID uuid.UUID, key string) (*Entry, error)
	ListEntries(ctx context.Context, projectID uuid.UUID) ([]EntryInfo, error)
	ListEntriesByPrefix(ctx context.Context, projectID uuid.UUID, prefix string) ([]EntryInfo, error)
	StoreEntry(ctx context.Context, req StoreEntryRequest) error
	DeleteEntry(ctx context.Context, projectID uuid.UUID, key string) error
}
