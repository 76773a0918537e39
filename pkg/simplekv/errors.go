package simplekv

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrEntryNotFound indicates no entry exists for the addressed
	// (project, key) pair. It is an expected outcome for point lookups and
	// deletes, never for listings.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrProjectNotFound indicates an entry write referenced a project row
	// that does not exist. The service never surfaces this under normal
	// operation because project existence is established before every write.
	ErrProjectNotFound = errors.New("project not found")

	// ErrEmptyKey indicates an operation addressed an entry with an empty key.
	ErrEmptyKey = errors.New("key must not be empty")
)

// EntryError represents an error related to entry operations
type EntryError struct {
	ProjectID uuid.UUID
	Key       string
	Op        string
	Err       error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry operation %s failed for key %q in project %s: %v", e.Op, e.Key, e.ProjectID, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// ProjectError represents an error related to project operations
type ProjectError struct {
	ProjectID uuid.UUID
	Op        string
	Err       error
}

func (e *ProjectError) Error() string {
	return fmt.Sprintf("project operation %s failed for project %s: %v", e.Op, e.ProjectID, e.Err)
}

func (e *ProjectError) Unwrap() error {
	return e.Err
}
