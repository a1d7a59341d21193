package task

import (
	"github.com/haierkeys/ephemeral-notes-service/internal/service"
	"github.com/haierkeys/ephemeral-notes-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager 任务管理器,负责创建和管理所有任务
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
}

// NewManager 创建任务管理器
func NewManager(lg *zap.Logger, sc *safe_close.SafeClose) *Manager {
	return &Manager{
		scheduler: NewScheduler(lg, sc),
		logger:    lg,
	}
}

// RegisterTasks 注册所有任务
func (m *Manager) RegisterTasks(noteService service.NoteService) {
	// 过期笔记清理兜底任务
	m.scheduler.AddTask(NewNoteCleanupTask(noteService, m.logger, 0))
}

// Start 启动所有已注册的任务
func (m *Manager) Start() {
	m.scheduler.Start()
}
