package task

import (
	"context"
	"time"

	"github.com/haierkeys/ephemeral-notes-service/internal/service"

	"go.uber.org/zap"
)

// NoteCleanupTask 过期笔记清理任务
// 清理主要由请求触发，这里是低频兜底，保证长时间无请求时过期笔记也会被删除
type NoteCleanupTask struct {
	noteService service.NoteService
	logger      *zap.Logger
	interval    time.Duration
	firstRun    bool
}

// NewNoteCleanupTask 创建过期笔记清理任务
func NewNoteCleanupTask(noteService service.NoteService, lg *zap.Logger, interval time.Duration) *NoteCleanupTask {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &NoteCleanupTask{
		noteService: noteService,
		logger:      lg,
		interval:    interval,
		firstRun:    true,
	}
}

// Name 返回任务名称
func (t *NoteCleanupTask) Name() string {
	return "NoteCleanupTask"
}

// Run 执行清理任务
func (t *NoteCleanupTask) Run(ctx context.Context) error {
	status := "scheduled"
	if t.firstRun {
		status = "first-run"
		t.firstRun = false
	}

	err := t.noteService.CleanupExpired(ctx)

	if err != nil {
		t.logger.Error(t.Name()+" failed ["+status+"]: ", zap.Error(err))
	} else {
		t.logger.Info(t.Name() + " completed successfully [" + status + "]")
	}

	return err
}

// LoopInterval 返回执行间隔
func (t *NoteCleanupTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 是否立即执行一次
func (t *NoteCleanupTask) IsStartupRun() bool {
	return true
}
