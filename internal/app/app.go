package app

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quillnotes/quill-notes-service/internal/dao"
	"github.com/quillnotes/quill-notes-service/internal/domain"
	"github.com/quillnotes/quill-notes-service/internal/service"
	pkgapp "github.com/quillnotes/quill-notes-service/pkg/app"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// Repository 层
	NoteRepo        domain.NoteRepository
	NoteVersionRepo domain.NoteVersionRepository
	UserRepo        domain.UserRepository

	// Service 层
	NoteService        service.NoteService
	NoteVersionService service.NoteVersionService
	UserService        service.UserService

	// 基础设施组件
	TokenManager pkgapp.TokenManager
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config: cfg,
		logger: logger,
		DB:     db,
	}

	a.Dao = dao.New(db, logger)

	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Expire:    cfg.GetTokenExpiry(),
	})

	// Repository 层
	a.NoteRepo = dao.NewNoteRepository(a.Dao)
	a.NoteVersionRepo = dao.NewNoteVersionRepository(a.Dao)
	a.UserRepo = dao.NewUserRepository(a.Dao)

	// 从 AppConfig 提取 Service 层需要的配置
	svcConfig := &service.ServiceConfig{
		RegisterEnabled: cfg.User.RegisterIsEnable,
		DefaultPageSize: cfg.App.DefaultPageSize,
		MaxPageSize:     cfg.App.MaxPageSize,
		Versioning: service.VersioningConfig{
			ChangePercentThreshold: cfg.Versioning.ChangePercentThreshold,
			MinChangedChars:        cfg.Versioning.MinChangedChars,
			MinSnapshotInterval:    cfg.GetMinSnapshotInterval(),
			TrashRetention:         cfg.GetTrashRetention(),
		},
	}

	// Service 层
	a.NoteVersionService = service.NewNoteVersionService(a.NoteRepo, a.NoteVersionRepo, logger, svcConfig)
	a.NoteService = service.NewNoteService(a.NoteRepo, a.NoteVersionRepo, a.NoteVersionService, logger, svcConfig)
	a.UserService = service.NewUserService(a.UserRepo, a.TokenManager, logger, svcConfig)

	logger.Info("App container initialized",
		zap.String("database", cfg.Database.Type),
		zap.Float64("changePercentThreshold", cfg.Versioning.ChangePercentThreshold),
	)

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// IsProductionMode 是否为生产模式
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}
