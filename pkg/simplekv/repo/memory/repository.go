package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-kv/pkg/simplekv"
)

// Repository implements simplekv.Repository using in-memory storage
type Repository struct {
	mu       sync.RWMutex
	projects map[uuid.UUID]struct{}
	entries  map[uuid.UUID]map[string]*simplekv.Entry // project_id -> key -> entry
}

// New creates a new in-memory repository
func New() simplekv.Repository {
	return &Repository{
		projects: make(map[uuid.UUID]struct{}),
		entries:  make(map[uuid.UUID]map[string]*simplekv.Entry),
	}
}

// Project operations

func (r *Repository) CreateProject(ctx context.Context, project *simplekv.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.projects[project.ID]; exists {
		return fmt.Errorf("project %s already exists", project.ID)
	}
	r.projects[project.ID] = struct{}{}

	return nil
}

func (r *Repository) EnsureProject(ctx context.Context, projectID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.projects[projectID] = struct{}{}
	return nil
}

// Entry operations

func (r *Repository) GetEntry(ctx context.Context, projectID uuid.UUID, key string) (*simplekv.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[projectID][key]
	if !exists {
		return nil, simplekv.ErrEntryNotFound
	}

	// Return a copy to prevent external modifications
	entryCopy := *entry
	entryCopy.Content = append([]byte(nil), entry.Content...)
	return &entryCopy, nil
}

func (r *Repository) ListEntries(ctx context.Context, projectID uuid.UUID) ([]simplekv.EntryInfo, error) {
	return r.listEntries(projectID, func(string) bool { return true }), nil
}

func (r *Repository) ListEntriesByPrefix(ctx context.Context, projectID uuid.UUID, prefix string) ([]simplekv.EntryInfo, error) {
	return r.listEntries(projectID, func(key string) bool {
		return strings.HasPrefix(key, prefix)
	}), nil
}

func (r *Repository) listEntries(projectID uuid.UUID, match func(key string) bool) []simplekv.EntryInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := []simplekv.EntryInfo{}
	for key, entry := range r.entries[projectID] {
		if match(key) {
			infos = append(infos, simplekv.EntryInfo{Key: key, MimeType: entry.MimeType})
		}
	}

	// Go string comparison is byte-wise, which is exactly the required
	// ordering for listings.
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })

	return infos
}

func (r *Repository) UpsertEntry(ctx context.Context, entry *simplekv.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.projects[entry.ProjectID]; !exists {
		return simplekv.ErrProjectNotFound
	}

	// Store a copy to avoid external modifications
	entryCopy := *entry
	entryCopy.Content = append([]byte(nil), entry.Content...)
	entryCopy.UpdatedAt = time.Now().UTC()

	if r.entries[entry.ProjectID] == nil {
		r.entries[entry.ProjectID] = make(map[string]*simplekv.Entry)
	}
	r.entries[entry.ProjectID][entry.Key] = &entryCopy

	return nil
}

func (r *Repository) DeleteEntry(ctx context.Context, projectID uuid.UUID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[projectID][key]; !exists {
		return simplekv.ErrEntryNotFound
	}
	delete(r.entries[projectID], key)

	return nil
}
