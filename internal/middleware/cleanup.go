package middleware

import (
	"context"

	"github.com/haierkeys/ephemeral-notes-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Cleanup 创建请求触发的过期清理中间件
// 每个请求异步触发一次过期笔记清理，不阻塞请求本身
// 清理失败只记录日志，不影响请求结果
func Cleanup(noteService service.NoteService, lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		go func() {
			defer func() {
				if err := recover(); err != nil {
					lg.Error("cleanup goroutine panic", zap.Any("panic_value", err))
				}
			}()

			// 与请求生命周期脱钩，请求结束不应中断清理
			if err := noteService.CleanupExpired(context.Background()); err != nil {
				lg.Error("expired note cleanup failed", zap.Error(err))
			}
		}()

		c.Next()
	}
}
