package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillnotes/quill-notes-service/internal/dto"
	"github.com/quillnotes/quill-notes-service/pkg/code"
	"github.com/quillnotes/quill-notes-service/pkg/util"
)

func TestNoteCreateAndGet(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	note := env.createNote(t, 1, "groceries", "milk, eggs")
	assert.NotZero(t, note.ID)
	assert.Equal(t, util.EncodeMD5("milk, eggs"), note.ContentHash)

	got, err := env.noteService.Get(ctx, 1, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "groceries", got.Title)
	assert.Equal(t, "milk, eggs", got.Content)
}

func TestNoteGetOwnershipMismatch(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "private", "secret")

	_, err := env.noteService.Get(ctx, 2, note.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestNoteUpdateTriggersAutoVersion(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "journal", "")

	updated, err := env.noteService.Update(ctx, 1, &dto.NoteUpdateRequest{
		ID:      note.ID,
		Title:   "journal",
		Content: "Hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello", updated.Content)

	list, count, err := env.versionService.List(ctx, 1, note.ID, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
	assert.Equal(t, "Auto-saved version", list[0].ChangeDescription)
}

func TestNoteUpdateTitleOnlyNoVersion(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "old title", "body")

	_, err := env.noteService.Update(ctx, 1, &dto.NoteUpdateRequest{
		ID:      note.ID,
		Title:   "new title",
		Content: "body",
	})
	require.NoError(t, err)

	_, count, err := env.versionService.List(ctx, 1, note.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestNoteUpdateUnknownNote(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.noteService.Update(ctx, 1, &dto.NoteUpdateRequest{ID: 42, Title: "x", Content: "y"})
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestNoteListPagination(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		env.createNote(t, 1, "note", "body")
	}
	env.createNote(t, 2, "other user", "body")

	list, count, err := env.noteService.List(ctx, 1, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.Len(t, list, 3)

	list, _, err = env.noteService.List(ctx, 1, 2, 3)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestNoteDelete(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "doomed", "body")

	require.NoError(t, env.noteService.Delete(ctx, 1, note.ID))

	_, err := env.noteService.Get(ctx, 1, note.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	// 再删一次按不存在处理
	err = env.noteService.Delete(ctx, 1, note.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestPurgeDeletedBeforeCascadesVersions(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "doomed", "body")

	_, err := env.versionService.Create(ctx, 1, &dto.VersionCreateRequest{NoteID: note.ID})
	require.NoError(t, err)
	require.NoError(t, env.noteService.Delete(ctx, 1, note.ID))

	purged, err := env.noteService.PurgeDeletedBefore(ctx, time.Now().Add(time.Minute), 100)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	versions, _, err := env.versionRepo.ListByNoteID(ctx, note.ID, 1, 10, 1)
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestPurgeRespectsRetentionCutoff(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "kept", "body")

	require.NoError(t, env.noteService.Delete(ctx, 1, note.ID))

	// 保留期未到，不应清除
	purged, err := env.noteService.PurgeDeletedBefore(ctx, time.Now().Add(-time.Hour), 100)
	require.NoError(t, err)
	assert.Equal(t, 0, purged)
}
