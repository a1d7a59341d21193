// Package routers 组装 HTTP 路由
package routers

import (
	"time"

	"github.com/haierkeys/ephemeral-notes-service/internal/app"
	"github.com/haierkeys/ephemeral-notes-service/internal/middleware"
	"github.com/haierkeys/ephemeral-notes-service/internal/routers/api_router"
	"github.com/haierkeys/ephemeral-notes-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/notes",
		FillInterval: time.Second,
		Capacity:     50,
		Quantum:      50,
	},
)

// NewRouter 创建 HTTP 路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(app.Name, app.Version))
		api.Use(middleware.Tracer(middleware.TracerConfig{
			Enabled: cfg.Tracer.Enabled,
			Header:  cfg.Tracer.Header,
		}))
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))
		api.Use(middleware.Identity(middleware.IdentityConfig{
			CookieName: cfg.Identity.CookieName,
			Refresh:    cfg.Identity.Refresh,
		}))
		// 每个请求都异步触发一次过期清理
		api.Use(middleware.Cleanup(appContainer.NoteService, appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		noteHandler := api_router.NewNoteHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		api.GET("/version", versionHandler.ServerVersion)

		api.GET("/notes", noteHandler.List)
		api.POST("/notes", noteHandler.Create)
		api.GET("/notes/search", noteHandler.Search)
		api.GET("/notes/:id", noteHandler.Get)
		api.POST("/notes/:id", noteHandler.Update)
	}

	r.NoRoute(middleware.NoFound())

	return r
}
