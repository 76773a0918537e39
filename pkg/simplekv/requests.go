package simplekv

import "github.com/google/uuid"

// Request DTOs

// StoreEntryRequest contains parameters for storing an entry.
//
// An empty MimeType is recorded as DefaultMimeType. ProjectID may name a
// project that was never explicitly created; the store operation registers
// it implicitly.
type StoreEntryRequest struct {
	ProjectID uuid.UUID
	Key       string
	MimeType  string
	Content   []byte
}
