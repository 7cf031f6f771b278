package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/quillnotes/quill-notes-service/internal/dao"
	"github.com/quillnotes/quill-notes-service/internal/domain"
	"github.com/quillnotes/quill-notes-service/internal/dto"
	"github.com/quillnotes/quill-notes-service/internal/model"
	"github.com/quillnotes/quill-notes-service/pkg/app"
)

// testEnv 用内存 sqlite 搭建完整的存储与服务栈
type testEnv struct {
	noteRepo    domain.NoteRepository
	versionRepo domain.NoteVersionRepository
	userRepo    domain.UserRepository

	noteService    NoteService
	versionService NoteVersionService
	userService    UserService

	config *ServiceConfig
}

func newTestEnv(t *testing.T, cfg *ServiceConfig) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
		TranslateError: true,
	})
	require.NoError(t, err)

	// 内存库每个连接是独立数据库，必须收紧到单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, model.AutoMigrateAll(db))

	if cfg == nil {
		cfg = DefaultServiceConfig()
	}

	d := dao.New(db, zap.NewNop())
	noteRepo := dao.NewNoteRepository(d)
	versionRepo := dao.NewNoteVersionRepository(d)
	userRepo := dao.NewUserRepository(d)

	versionService := NewNoteVersionService(noteRepo, versionRepo, zap.NewNop(), cfg)
	noteService := NewNoteService(noteRepo, versionRepo, versionService, zap.NewNop(), cfg)
	tokenManager := app.NewTokenManager(app.TokenConfig{
		SecretKey: "test-secret",
		Expire:    time.Hour,
	})
	userService := NewUserService(userRepo, tokenManager, zap.NewNop(), cfg)

	return &testEnv{
		noteRepo:       noteRepo,
		versionRepo:    versionRepo,
		userRepo:       userRepo,
		noteService:    noteService,
		versionService: versionService,
		userService:    userService,
		config:         cfg,
	}
}

func (e *testEnv) createNote(t *testing.T, uid int64, title, content string) *dto.Note {
	t.Helper()
	note, err := e.noteService.Create(context.Background(), uid, &dto.NoteCreateRequest{
		Title:   title,
		Content: content,
	})
	require.NoError(t, err)
	return note
}
