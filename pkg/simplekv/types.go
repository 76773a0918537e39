package simplekv

import (
	"time"

	"github.com/google/uuid"
)

// DefaultMimeType is recorded for entries stored without an explicit
// content type.
const DefaultMimeType = "application/octet-stream"

// Project is an isolation scope for entries. Keys are unique within a
// project. A project has no attributes beyond its identity.
type Project struct {
	ID uuid.UUID `json:"id"`
}

// Entry is the value stored under a key within a project. At most one entry
// exists per (project, key) pair; writes replace mime type, content and
// updated_at wholesale.
type Entry struct {
	ProjectID uuid.UUID `json:"project_id"`
	Key       string    `json:"key"`
	MimeType  string    `json:"mime_type"`
	Content   []byte    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntryInfo describes an entry in listing results. Content is never
// included when listing.
type EntryInfo struct {
	Key      string `json:"key"`
	MimeType string `json:"mime_type"`
}
