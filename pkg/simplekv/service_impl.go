package simplekv

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repository Repository
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}

	return s, nil
}

func (s *service) CreateProject(ctx context.Context) (*Project, error) {
	project := &Project{ID: uuid.New()}

	if err := s.repository.CreateProject(ctx, project); err != nil {
		return nil, &ProjectError{
			ProjectID: project.ID,
			Op:        "create",
			Err:       err,
		}
	}

	return project, nil
}

func (s *service) GetEntry(ctx context.Context, projectID uuid.UUID, key string) (*Entry, error) {
	entry, err := s.repository.GetEntry(ctx, projectID, key)
	if err != nil {
		return nil, &EntryError{ProjectID: projectID, Key: key, Op: "get", Err: err}
	}
	return entry, nil
}

func (s *service) ListEntries(ctx context.Context, projectID uuid.UUID) ([]EntryInfo, error) {
	infos, err := s.repository.ListEntries(ctx, projectID)
	if err != nil {
		return nil, &ProjectError{ProjectID: projectID, Op: "list", Err: err}
	}
	if infos == nil {
		infos = []EntryInfo{}
	}
	return infos, nil
}

func (s *service) ListEntriesByPrefix(ctx context.Context, projectID uuid.UUID, prefix string) ([]EntryInfo, error) {
	infos, err := s.repository.ListEntriesByPrefix(ctx, projectID, prefix)
	if err != nil {
		return nil, &ProjectError{ProjectID: projectID, Op: "list by prefix", Err: err}
	}
	if infos == nil {
		infos = []EntryInfo{}
	}
	return infos, nil
}

func (s *service) StoreEntry(ctx context.Context, req StoreEntryRequest) error {
	if req.Key == "" {
		return &EntryError{ProjectID: req.ProjectID, Op: "store", Err: ErrEmptyKey}
	}

	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = DefaultMimeType
	}

	// Establish project existence before the entry write so a concurrent
	// first write to a brand-new project never hits a missing project row.
	if err := s.repository.EnsureProject(ctx, req.ProjectID); err != nil {
		return &ProjectError{ProjectID: req.ProjectID, Op: "ensure", Err: err}
	}

	entry := &Entry{
		ProjectID: req.ProjectID,
		Key:       req.Key,
		MimeType:  mimeType,
		Content:   req.Content,
	}
	if err := s.repository.UpsertEntry(ctx, entry); err != nil {
		return &EntryError{ProjectID: req.ProjectID, Key: req.Key, Op: "store", Err: err}
	}

	return nil
}

func (s *service) DeleteEntry(ctx context.Context, projectID uuid.UUID, key string) error {
	if err := s.repository.DeleteEntry(ctx, projectID, key); err != nil {
		return &EntryError{ProjectID: projectID, Key: key, Op: "delete", Err: err}
	}
	return nil
}
