package task

import (
	"go.uber.org/zap"

	"github.com/quillnotes/quill-notes-service/internal/app"
	"github.com/quillnotes/quill-notes-service/pkg/safe_close"
)

// Manager 任务管理器，负责创建和管理所有任务
type Manager struct {
	scheduler *Scheduler
	app       *app.App
	logger    *zap.Logger
}

// NewManager 创建任务管理器
func NewManager(a *app.App, sc *safe_close.SafeClose) *Manager {
	return &Manager{
		scheduler: NewScheduler(a.Logger(), sc),
		app:       a,
		logger:    a.Logger(),
	}
}

// RegisterTasks 注册所有任务
func (m *Manager) RegisterTasks() error {
	purgeTask := NewNotePurgeTask(m.app)
	if purgeTask != nil {
		m.scheduler.AddTask(purgeTask)
	} else {
		m.logger.Info("note purge task is disabled (trash retention not configured)")
	}

	return nil
}

// Start 启动所有已注册的任务
func (m *Manager) Start() {
	m.scheduler.Start()
}
