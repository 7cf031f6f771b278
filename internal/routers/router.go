// Package routers 组装 HTTP 路由与中间件链
package routers

import (
	"time"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"

	"github.com/quillnotes/quill-notes-service/internal/app"
	"github.com/quillnotes/quill-notes-service/internal/middleware"
	"github.com/quillnotes/quill-notes-service/internal/routers/api_router"
	"github.com/quillnotes/quill-notes-service/pkg/limiter"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/user",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

// NewRouter 创建主路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {
	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(gin.Logger())
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header))
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		userHandler := api_router.NewUserHandler(appContainer)
		noteHandler := api_router.NewNoteHandler(appContainer)
		noteVersionHandler := api_router.NewNoteVersionHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)

		// 服务端版本号接口，无需认证
		api.GET("/version", versionHandler.ServerVersion)

		auth := middleware.UserAuthTokenWithManager(appContainer.TokenManager)

		api.Use(auth).GET("/user/info", userHandler.Info)

		api.Use(auth).GET("/note", noteHandler.Get)
		api.Use(auth).POST("/note", noteHandler.Create)
		api.Use(auth).PUT("/note", noteHandler.Update)
		api.Use(auth).DELETE("/note", noteHandler.Delete)
		api.Use(auth).GET("/notes", noteHandler.List)

		api.Use(auth).GET("/note/versions", noteVersionHandler.List)
		api.Use(auth).POST("/note/version", noteVersionHandler.Create)
		api.Use(auth).GET("/note/version", noteVersionHandler.Get)
		api.Use(auth).GET("/note/version/diff", noteVersionHandler.Diff)
		api.Use(auth).PUT("/note/version/restore", noteVersionHandler.Restore)
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
