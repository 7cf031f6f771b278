package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/quillnotes/quill-notes-service/internal/app"
)

// purgeBatchSize 单轮最多清除的笔记数
const purgeBatchSize = 500

// NotePurgeTask 清除保留期已过的软删除笔记及其全部版本
type NotePurgeTask struct {
	app       *app.App
	retention time.Duration
	interval  time.Duration
}

// NewNotePurgeTask 创建清除任务，保留期为零时返回 nil 表示禁用
func NewNotePurgeTask(a *app.App) *NotePurgeTask {
	retention := a.Config().GetTrashRetention()
	if retention <= 0 {
		return nil
	}

	return &NotePurgeTask{
		app:       a,
		retention: retention,
		interval:  10 * time.Minute,
	}
}

// Name 返回任务名称
func (t *NotePurgeTask) Name() string {
	return "NotePurgeTask"
}

// Run 执行一轮清除
func (t *NotePurgeTask) Run(ctx context.Context) error {
	cutoff := time.Now().Add(-t.retention)

	purged, err := t.app.NoteService.PurgeDeletedBefore(ctx, cutoff, purgeBatchSize)
	if err != nil {
		return err
	}

	if purged > 0 {
		t.app.Logger().Info("purged soft-deleted notes",
			zap.Int("count", purged),
			zap.Time("cutoff", cutoff))
	}
	return nil
}

// LoopInterval 返回执行间隔
func (t *NotePurgeTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 是否立即执行一次
func (t *NotePurgeTask) IsStartupRun() bool {
	return true
}
