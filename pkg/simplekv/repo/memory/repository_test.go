package memory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-kv/pkg/simplekv"
	"github.com/tendant/simple-kv/pkg/simplekv/repo/memory"
)

func TestMemoryRepository_ProjectOperations(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	t.Run("CreateProject", func(t *testing.T) {
		project := &simplekv.Project{ID: uuid.New()}

		err := repo.CreateProject(ctx, project)
		assert.NoError(t, err)

		// A second create for the same identifier is a conflict
		err = repo.CreateProject(ctx, project)
		assert.Error(t, err)
	})

	t.Run("EnsureProjectIsIdempotent", func(t *testing.T) {
		projectID := uuid.New()

		require.NoError(t, repo.EnsureProject(ctx, projectID))
		require.NoError(t, repo.EnsureProject(ctx, projectID))

		// Ensure also succeeds for explicitly created projects
		project := &simplekv.Project{ID: uuid.New()}
		require.NoError(t, repo.CreateProject(ctx, project))
		assert.NoError(t, repo.EnsureProject(ctx, project.ID))
	})
}

func TestMemoryRepository_EntryOperations(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	projectID := uuid.New()
	require.NoError(t, repo.EnsureProject(ctx, projectID))

	t.Run("UpsertRequiresProject", func(t *testing.T) {
		err := repo.UpsertEntry(ctx, &simplekv.Entry{
			ProjectID: uuid.New(),
			Key:       "orphan",
			MimeType:  "text/plain",
			Content:   []byte("x"),
		})
		assert.ErrorIs(t, err, simplekv.ErrProjectNotFound)
	})

	t.Run("UpsertAndGet", func(t *testing.T) {
		entry := &simplekv.Entry{
			ProjectID: projectID,
			Key:       "k",
			MimeType:  "text/plain",
			Content:   []byte("v1"),
		}
		require.NoError(t, repo.UpsertEntry(ctx, entry))

		got, err := repo.GetEntry(ctx, projectID, "k")
		require.NoError(t, err)
		assert.Equal(t, "text/plain", got.MimeType)
		assert.Equal(t, []byte("v1"), got.Content)
		assert.False(t, got.UpdatedAt.IsZero())
	})

	t.Run("GetReturnsCopy", func(t *testing.T) {
		require.NoError(t, repo.UpsertEntry(ctx, &simplekv.Entry{
			ProjectID: projectID,
			Key:       "copy",
			MimeType:  "text/plain",
			Content:   []byte("abc"),
		}))

		got, err := repo.GetEntry(ctx, projectID, "copy")
		require.NoError(t, err)
		got.Content[0] = 'x'

		again, err := repo.GetEntry(ctx, projectID, "copy")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), again.Content)
	})

	t.Run("UpsertReplaces", func(t *testing.T) {
		require.NoError(t, repo.UpsertEntry(ctx, &simplekv.Entry{
			ProjectID: projectID, Key: "r", MimeType: "text/plain", Content: []byte("old"),
		}))
		require.NoError(t, repo.UpsertEntry(ctx, &simplekv.Entry{
			ProjectID: projectID, Key: "r", MimeType: "application/json", Content: []byte("new"),
		}))

		got, err := repo.GetEntry(ctx, projectID, "r")
		require.NoError(t, err)
		assert.Equal(t, "application/json", got.MimeType)
		assert.Equal(t, []byte("new"), got.Content)
	})

	t.Run("DeleteEntry", func(t *testing.T) {
		require.NoError(t, repo.UpsertEntry(ctx, &simplekv.Entry{
			ProjectID: projectID, Key: "d", MimeType: "text/plain", Content: []byte("x"),
		}))

		require.NoError(t, repo.DeleteEntry(ctx, projectID, "d"))
		assert.ErrorIs(t, repo.DeleteEntry(ctx, projectID, "d"), simplekv.ErrEntryNotFound)

		_, err := repo.GetEntry(ctx, projectID, "d")
		assert.ErrorIs(t, err, simplekv.ErrEntryNotFound)
	})
}

func TestMemoryRepository_Listings(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	projectID := uuid.New()
	require.NoError(t, repo.EnsureProject(ctx, projectID))

	for _, key := range []string{"b", "a/1", "a/2", "c"} {
		require.NoError(t, repo.UpsertEntry(ctx, &simplekv.Entry{
			ProjectID: projectID,
			Key:       key,
			MimeType:  "text/plain",
			Content:   []byte(key),
		}))
	}

	t.Run("ListEntriesSorted", func(t *testing.T) {
		infos, err := repo.ListEntries(ctx, projectID)
		require.NoError(t, err)

		keys := make([]string, 0, len(infos))
		for _, info := range infos {
			keys = append(keys, info.Key)
		}
		assert.Equal(t, []string{"a/1", "a/2", "b", "c"}, keys)
	})

	t.Run("ListEntriesByPrefix", func(t *testing.T) {
		infos, err := repo.ListEntriesByPrefix(ctx, projectID, "a/")
		require.NoError(t, err)
		require.Len(t, infos, 2)
		assert.Equal(t, "a/1", infos[0].Key)
		assert.Equal(t, "a/2", infos[1].Key)
	})

	t.Run("UnknownProjectListsEmpty", func(t *testing.T) {
		infos, err := repo.ListEntries(ctx, uuid.New())
		require.NoError(t, err)
		assert.NotNil(t, infos)
		assert.Empty(t, infos)
	})
}
