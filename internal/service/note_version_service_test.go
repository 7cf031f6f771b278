package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillnotes/quill-notes-service/internal/dto"
	"github.com/quillnotes/quill-notes-service/pkg/code"
)

func TestVersionNumbersAreContiguous(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "first body")

	for i := int64(1); i <= 3; i++ {
		created, err := env.versionService.Create(ctx, 1, &dto.VersionCreateRequest{NoteID: note.ID})
		require.NoError(t, err)
		assert.Equal(t, i, created.VersionNumber)
		assert.Equal(t, "Manual save", created.ChangeDescription)
		assert.Equal(t, "first body", created.Content)
		assert.NotEmpty(t, created.VersionID)
	}
}

func TestManualCreateCustomDescription(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "body")

	created, err := env.versionService.Create(ctx, 1, &dto.VersionCreateRequest{
		NoteID:            note.ID,
		ChangeDescription: "before big rewrite",
	})
	require.NoError(t, err)
	assert.Equal(t, "before big rewrite", created.ChangeDescription)
}

func TestManualCreateUnknownNote(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.versionService.Create(ctx, 1, &dto.VersionCreateRequest{NoteID: 999})
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestManualCreateOwnershipMismatch(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "body")

	// 他人的笔记表现得和不存在一样
	_, err := env.versionService.Create(ctx, 2, &dto.VersionCreateRequest{NoteID: note.ID})
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestConcurrentManualCreates(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "body")

	_, err := env.versionService.Create(ctx, 1, &dto.VersionCreateRequest{NoteID: note.ID})
	require.NoError(t, err)

	var wg sync.WaitGroup
	numbers := make(chan int64, 2)
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := env.versionService.Create(ctx, 1, &dto.VersionCreateRequest{NoteID: note.ID})
			if err != nil {
				errs <- err
				return
			}
			numbers <- created.VersionNumber
		}()
	}
	wg.Wait()
	close(numbers)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	got := map[int64]bool{}
	for n := range numbers {
		got[n] = true
	}
	assert.Equal(t, map[int64]bool{2: true, 3: true}, got)
}

func TestAutoSaveEmptyToNonEmpty(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "")

	created, err := env.versionService.MaybeAutoSave(ctx, 1, note.ID, "", "Hello")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, int64(1), created.VersionNumber)
	assert.Equal(t, "Hello", created.Content)
	assert.Equal(t, "Auto-saved version", created.ChangeDescription)
}

func TestAutoSaveIdenticalContent(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "same")

	created, err := env.versionService.MaybeAutoSave(ctx, 1, note.ID, "same", "same")
	require.NoError(t, err)
	assert.Nil(t, created)
}

func TestAutoSaveSkipsInsignificantChange(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	// 一千字符的底稿，改一个字远低于 5% 与 200 字的阈值
	base := strings.Repeat("lorem ipsum ", 100)
	note := env.createNote(t, 1, "draft", base)

	_, err := env.versionService.Create(ctx, 1, &dto.VersionCreateRequest{NoteID: note.ID})
	require.NoError(t, err)

	created, err := env.versionService.MaybeAutoSave(ctx, 1, note.ID, base, base+"x")
	require.NoError(t, err)
	assert.Nil(t, created)

	_, count, err := env.versionService.List(ctx, 1, note.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAutoSaveSignificantPercentChange(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "Hello")

	_, err := env.versionService.Create(ctx, 1, &dto.VersionCreateRequest{NoteID: note.ID})
	require.NoError(t, err)

	// 短文本里的一个笔误已经超过 5% 的占比阈值
	created, err := env.versionService.MaybeAutoSave(ctx, 1, note.ID, "Hello", "Hellp")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, int64(2), created.VersionNumber)
}

func TestAutoSaveComparesAgainstLatestVersion(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	base := strings.Repeat("stable paragraph ", 60)
	note := env.createNote(t, 1, "draft", base)

	_, err := env.versionService.Create(ctx, 1, &dto.VersionCreateRequest{NoteID: note.ID})
	require.NoError(t, err)

	// 判定基线是最新版本的内容，而不是调用方给的 previousLive
	created, err := env.versionService.MaybeAutoSave(ctx, 1, note.ID, "something else entirely", base+"!")
	require.NoError(t, err)
	assert.Nil(t, created)
}

func TestConcurrentAutoSavesDistinctContent(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "")

	// 两个并发编辑各自提交不同内容，必须各得各的版本，
	// 不能把一方的快照当成另一方的结果返回
	contents := []string{
		strings.Repeat("alpha paragraph ", 30),
		strings.Repeat("omega paragraph ", 30),
	}

	var wg sync.WaitGroup
	results := make(chan *dto.NoteVersion, len(contents))
	errs := make(chan error, len(contents))
	for _, content := range contents {
		wg.Add(1)
		go func(content string) {
			defer wg.Done()
			created, err := env.versionService.MaybeAutoSave(ctx, 1, note.ID, "", content)
			if err != nil {
				errs <- err
				return
			}
			if created == nil {
				errs <- errors.New("no version created for submitted content")
				return
			}
			if created.Content != content {
				errs <- errors.New("returned snapshot does not match submitted content")
				return
			}
			results <- created
		}(content)
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	numbers := map[int64]bool{}
	for created := range results {
		numbers[created.VersionNumber] = true
	}
	assert.Equal(t, map[int64]bool{1: true, 2: true}, numbers)

	_, count, err := env.versionService.List(ctx, 1, note.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestAutoSaveUnknownNote(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.versionService.MaybeAutoSave(ctx, 1, 999, "", "Hello")
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestAutoSaveOwnershipMismatch(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "")

	_, err := env.versionService.MaybeAutoSave(ctx, 2, note.ID, "", "Hello")
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	_, count, err := env.versionService.List(ctx, 1, note.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestListVersionSummariesAscending(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "body")

	for i := 0; i < 3; i++ {
		_, err := env.versionService.Create(ctx, 1, &dto.VersionCreateRequest{NoteID: note.ID})
		require.NoError(t, err)
	}

	list, count, err := env.versionService.List(ctx, 1, note.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	require.Len(t, list, 3)
	for i, summary := range list {
		assert.Equal(t, int64(i+1), summary.VersionNumber)
	}
}

func TestListVersionsOwnershipMismatch(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "body")

	_, _, err := env.versionService.List(ctx, 2, note.ID, 1, 10)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestGetVersionNotFound(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "body")

	_, err := env.versionService.Get(ctx, 1, &dto.VersionGetRequest{NoteID: note.ID, VersionNumber: 7})
	assert.ErrorIs(t, err, code.ErrorVersionNotFound)
}

func TestDiffAgainstLiveContent(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "Hello")

	_, err := env.versionService.Create(ctx, 1, &dto.VersionCreateRequest{NoteID: note.ID})
	require.NoError(t, err)

	_, err = env.noteService.Update(ctx, 1, &dto.NoteUpdateRequest{
		ID:      note.ID,
		Title:   "draft",
		Content: "Hello world",
	})
	require.NoError(t, err)

	result, err := env.versionService.Diff(ctx, 1, &dto.VersionDiffRequest{
		NoteID:   note.ID,
		VersionA: 1,
		VersionB: CurrentVersionNumber,
	})
	require.NoError(t, err)

	require.NotEmpty(t, result.Edits)
	inserted := ""
	for _, edit := range result.Edits {
		if edit.Op == "insert" {
			inserted += edit.Text
		}
	}
	assert.Equal(t, " world", inserted)
	assert.NotEmpty(t, result.HTML)
	assert.Contains(t, result.Text, "+ ")
}

func TestDiffStoredVersions(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "alpha")

	_, err := env.versionService.Create(ctx, 1, &dto.VersionCreateRequest{NoteID: note.ID})
	require.NoError(t, err)

	_, err = env.noteService.Update(ctx, 1, &dto.NoteUpdateRequest{ID: note.ID, Title: "draft", Content: "omega"})
	require.NoError(t, err)
	_, err = env.versionService.Create(ctx, 1, &dto.VersionCreateRequest{NoteID: note.ID})
	require.NoError(t, err)

	result, err := env.versionService.Diff(ctx, 1, &dto.VersionDiffRequest{NoteID: note.ID, VersionA: 1, VersionB: 2})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Edits)

	// 同一版本与自身对比为空
	same, err := env.versionService.Diff(ctx, 1, &dto.VersionDiffRequest{NoteID: note.ID, VersionA: 1, VersionB: 1})
	require.NoError(t, err)
	for _, edit := range same.Edits {
		assert.Equal(t, "equal", string(edit.Op))
	}
}

func TestDiffNegativeVersionNumber(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "body")

	_, err := env.versionService.Diff(ctx, 1, &dto.VersionDiffRequest{NoteID: note.ID, VersionA: -1, VersionB: 0})
	assert.ErrorIs(t, err, code.ErrorInvalidParams)
}

func TestDiffUnknownVersion(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "body")

	_, err := env.versionService.Diff(ctx, 1, &dto.VersionDiffRequest{NoteID: note.ID, VersionA: 5, VersionB: 0})
	assert.ErrorIs(t, err, code.ErrorVersionNotFound)
}

func TestRestoreCreatesNewVersionAndKeepsHistory(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "draft one")

	_, err := env.versionService.Create(ctx, 1, &dto.VersionCreateRequest{NoteID: note.ID})
	require.NoError(t, err)

	_, err = env.noteService.Update(ctx, 1, &dto.NoteUpdateRequest{ID: note.ID, Title: "draft", Content: "draft two"})
	require.NoError(t, err)
	_, err = env.versionService.Create(ctx, 1, &dto.VersionCreateRequest{NoteID: note.ID})
	require.NoError(t, err)

	restored, err := env.versionService.Restore(ctx, 1, &dto.VersionRestoreRequest{NoteID: note.ID, VersionNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), restored.VersionNumber)
	assert.Equal(t, "Restored from version 1", restored.ChangeDescription)
	assert.Equal(t, "draft one", restored.Content)

	// 笔记内容已回写
	current, err := env.noteService.Get(ctx, 1, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "draft one", current.Content)

	// 原有版本原封不动
	v1, err := env.versionService.Get(ctx, 1, &dto.VersionGetRequest{NoteID: note.ID, VersionNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, "draft one", v1.Content)
	v2, err := env.versionService.Get(ctx, 1, &dto.VersionGetRequest{NoteID: note.ID, VersionNumber: 2})
	require.NoError(t, err)
	assert.Equal(t, "draft two", v2.Content)

	_, count, err := env.versionService.List(ctx, 1, note.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestRestoreUnknownVersion(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "body")

	_, err := env.versionService.Restore(ctx, 1, &dto.VersionRestoreRequest{NoteID: note.ID, VersionNumber: 4})
	assert.ErrorIs(t, err, code.ErrorVersionNotFound)
}

func TestRestoreDeletedNote(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "draft", "body")

	_, err := env.versionService.Create(ctx, 1, &dto.VersionCreateRequest{NoteID: note.ID})
	require.NoError(t, err)
	require.NoError(t, env.noteService.Delete(ctx, 1, note.ID))

	_, err = env.versionService.Restore(ctx, 1, &dto.VersionRestoreRequest{NoteID: note.ID, VersionNumber: 1})
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

// 端到端走一遍编辑与恢复的生命周期
func TestVersioningLifecycle(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	note := env.createNote(t, 1, "journal", "")

	// 空到非空必定产生自动版本
	_, err := env.noteService.Update(ctx, 1, &dto.NoteUpdateRequest{ID: note.ID, Title: "journal", Content: "Hello"})
	require.NoError(t, err)

	// 短文本上的笔误超过占比阈值
	_, err = env.noteService.Update(ctx, 1, &dto.NoteUpdateRequest{ID: note.ID, Title: "journal", Content: "Hellp"})
	require.NoError(t, err)

	// 整段重写
	paragraph := "Hellp\n\n" + strings.Repeat("A much longer paragraph of notes. ", 12)
	_, err = env.noteService.Update(ctx, 1, &dto.NoteUpdateRequest{ID: note.ID, Title: "journal", Content: paragraph})
	require.NoError(t, err)

	list, count, err := env.versionService.List(ctx, 1, note.ID, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)
	for i, summary := range list {
		assert.Equal(t, int64(i+1), summary.VersionNumber)
		assert.Equal(t, "Auto-saved version", summary.ChangeDescription)
	}

	restored, err := env.versionService.Restore(ctx, 1, &dto.VersionRestoreRequest{NoteID: note.ID, VersionNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(4), restored.VersionNumber)
	assert.Equal(t, "Restored from version 1", restored.ChangeDescription)

	current, err := env.noteService.Get(ctx, 1, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", current.Content)
}

func TestAutoSaveIntervalTrigger(t *testing.T) {
	cfg := DefaultServiceConfig()
	cfg.Versioning.ChangePercentThreshold = 0
	cfg.Versioning.MinChangedChars = 0
	cfg.Versioning.MinSnapshotInterval = time.Nanosecond

	env := newTestEnv(t, cfg)
	ctx := context.Background()

	base := strings.Repeat("text ", 50)
	note := env.createNote(t, 1, "draft", base)

	_, err := env.versionService.Create(ctx, 1, &dto.VersionCreateRequest{NoteID: note.ID})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	created, err := env.versionService.MaybeAutoSave(ctx, 1, note.ID, base, base+"x")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, int64(2), created.VersionNumber)
}
