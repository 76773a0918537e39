package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/simple-kv/pkg/simplekv"
)

const (
	// maxKeyBytes bounds key length at the transport; the store itself
	// imposes no limit.
	maxKeyBytes = 1024

	// maxContentBytes bounds request bodies well below the BYTEA ceiling.
	maxContentBytes = 32 << 20
)

// Handler handles HTTP requests for the key-value store
type Handler struct {
	service simplekv.Service
}

// NewHandler creates a new key-value store handler
func NewHandler(service simplekv.Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the routes for the store, to be mounted under /project.
// Store and delete address keys with a catch-all path segment so keys may
// contain slashes; get and list use dedicated sub-paths.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateProject)
	r.Route("/{projectID}", func(r chi.Router) {
		r.Get("/get/*", h.GetEntry)
		r.Get("/list/", h.ListEntries)
		r.Get("/list/*", h.ListEntriesByPrefix)
		r.Post("/*", h.StoreEntry)
		r.Delete("/*", h.DeleteEntry)
	})

	return r
}

// ErrorResponse is the JSON body returned for failed requests
type ErrorResponse struct {
	Error string `json:"error"`
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: message})
}

// renderEntryError maps core errors onto transport outcomes: a missing key
// is a distinguishable not-found response, everything else is an opaque
// server-side failure.
func renderEntryError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, simplekv.ErrEntryNotFound) {
		renderError(w, r, http.StatusNotFound, "key not found")
		return
	}
	if errors.Is(err, simplekv.ErrEmptyKey) {
		renderError(w, r, http.StatusBadRequest, "key must not be empty")
		return
	}
	slog.Error("operation failed", "op", op, "err", err)
	renderError(w, r, http.StatusInternalServerError, "internal server error")
}

// projectID parses the project identifier path parameter.
func projectID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "projectID"))
}

// wildcardParam returns the decoded remainder of the path. chi routes on
// URL.RawPath only when the raw form is non-canonical (e.g. an encoded
// slash), and only then is the catch-all parameter still percent-encoded;
// for canonical paths the parameter arrives already decoded and must not be
// unescaped a second time.
func wildcardParam(r *http.Request) (string, error) {
	param := chi.URLParam(r, "*")
	if r.URL.RawPath == "" {
		return param, nil
	}
	return url.PathUnescape(param)
}

// CreateProject mints a new project identifier
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.service.CreateProject(r.Context())
	if err != nil {
		slog.Error("failed to create project", "err", err)
		renderError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	slog.Info("created project", "project", project.ID)
	render.JSON(w, r, project)
}

// GetEntry returns the stored bytes with their content type
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := projectID(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid project id")
		return
	}
	key, err := wildcardParam(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid key encoding")
		return
	}

	entry, err := h.service.GetEntry(r.Context(), id, key)
	if err != nil {
		renderEntryError(w, r, "get", err)
		return
	}

	slog.Info("retrieved value", "project", id, "key", key,
		"mime_type", entry.MimeType, "size", len(entry.Content))

	w.Header().Set("Content-Type", entry.MimeType)
	w.WriteHeader(http.StatusOK)
	w.Write(entry.Content)
}

// ListEntries lists every key under the project
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	id, err := projectID(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid project id")
		return
	}

	infos, err := h.service.ListEntries(r.Context(), id)
	if err != nil {
		renderEntryError(w, r, "list", err)
		return
	}

	render.JSON(w, r, infos)
}

// ListEntriesByPrefix lists keys under the project that literally start
// with the given prefix
func (h *Handler) ListEntriesByPrefix(w http.ResponseWriter, r *http.Request) {
	id, err := projectID(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid project id")
		return
	}
	prefix, err := wildcardParam(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid prefix encoding")
		return
	}

	infos, err := h.service.ListEntriesByPrefix(r.Context(), id, prefix)
	if err != nil {
		renderEntryError(w, r, "list by prefix", err)
		return
	}

	render.JSON(w, r, infos)
}

// StoreEntry upserts the request body under the key
func (h *Handler) StoreEntry(w http.ResponseWriter, r *http.Request) {
	id, err := projectID(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid project id")
		return
	}
	key, err := wildcardParam(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid key encoding")
		return
	}
	if len(key) > maxKeyBytes {
		renderError(w, r, http.StatusBadRequest, "key too long")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxContentBytes)
	content, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			renderError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		renderError(w, r, http.StatusBadRequest, "failed to read request body")
		return
	}

	req := simplekv.StoreEntryRequest{
		ProjectID: id,
		Key:       key,
		MimeType:  r.Header.Get("Content-Type"),
		Content:   content,
	}
	if err := h.service.StoreEntry(r.Context(), req); err != nil {
		renderEntryError(w, r, "store", err)
		return
	}

	slog.Info("stored value", "project", id, "key", key,
		"mime_type", req.MimeType, "size", len(content))

	w.WriteHeader(http.StatusCreated)
}

// DeleteEntry removes the entry for the key
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := projectID(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid project id")
		return
	}
	key, err := wildcardParam(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid key encoding")
		return
	}

	if err := h.service.DeleteEntry(r.Context(), id, key); err != nil {
		renderEntryError(w, r, "delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
