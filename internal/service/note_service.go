package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quillnotes/quill-notes-service/internal/domain"
	"github.com/quillnotes/quill-notes-service/internal/dto"
	"github.com/quillnotes/quill-notes-service/pkg/code"
	"github.com/quillnotes/quill-notes-service/pkg/logger"
	"github.com/quillnotes/quill-notes-service/pkg/timex"
	"github.com/quillnotes/quill-notes-service/pkg/util"
)

// NoteService 笔记服务接口
type NoteService interface {
	// Create 创建笔记
	Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.Note, error)
	// Get 获取笔记
	Get(ctx context.Context, uid, id int64) (*dto.Note, error)
	// Update 更新笔记，内容更新后同步做自动版本判定
	Update(ctx context.Context, uid int64, params *dto.NoteUpdateRequest) (*dto.Note, error)
	// List 分页获取笔记列表
	List(ctx context.Context, uid int64, page, pageSize int) ([]*dto.Note, int64, error)
	// Delete 软删除笔记，保留期过后由清理任务物理清除并级联删除版本
	Delete(ctx context.Context, uid, id int64) error
	// PurgeDeletedBefore 物理清除在 cutoff 之前软删除的笔记及其全部版本
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time, limit int) (int, error)
}

type noteService struct {
	noteRepo       domain.NoteRepository
	versionRepo    domain.NoteVersionRepository
	versionService NoteVersionService
	logger         *zap.Logger
	config         *ServiceConfig
}

var _ NoteService = (*noteService)(nil)

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, versionRepo domain.NoteVersionRepository, versionService NoteVersionService, lg *zap.Logger, cfg *ServiceConfig) NoteService {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}
	return &noteService{
		noteRepo:       noteRepo,
		versionRepo:    versionRepo,
		versionService: versionService,
		logger:         lg,
		config:         cfg,
	}
}

// ensureValidUTF8 剔除非法 UTF-8 序列，避免入库后无法序列化
func ensureValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "")
}

func (s *noteService) domainToDTO(n *domain.Note) *dto.Note {
	if n == nil {
		return nil
	}
	return &dto.Note{
		ID:          n.ID,
		Title:       n.Title,
		Content:     n.Content,
		ContentHash: n.ContentHash,
		CreatedAt:   timex.Time(n.CreatedAt),
		UpdatedAt:   timex.Time(n.UpdatedAt),
	}
}

// Create 创建笔记
func (s *noteService) Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.Note, error) {
	content := ensureValidUTF8(params.Content)
	note, err := s.noteRepo.Create(ctx, &domain.Note{
		UID:         uid,
		Title:       ensureValidUTF8(params.Title),
		Content:     content,
		ContentHash: util.EncodeMD5(content),
	})
	if err != nil {
		return nil, code.ErrorNoteCreateFailed.WithDetails(err.Error())
	}
	return s.domainToDTO(note), nil
}

// Get 获取笔记
func (s *noteService) Get(ctx context.Context, uid, id int64) (*dto.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(note), nil
}

// Update 更新笔记
// 更新落库后在同一请求内做自动版本判定，判定失败只记日志，
// 不回滚已完成的内容更新。
func (s *noteService) Update(ctx context.Context, uid int64, params *dto.NoteUpdateRequest) (*dto.Note, error) {
	existing, err := s.noteRepo.GetByID(ctx, params.ID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	content := ensureValidUTF8(params.Content)
	updated := &domain.Note{
		ID:          existing.ID,
		UID:         uid,
		Title:       ensureValidUTF8(params.Title),
		Content:     content,
		ContentHash: util.EncodeMD5(content),
	}
	if err := s.noteRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorNoteUpdateFailed.WithDetails(err.Error())
	}

	if content != existing.Content {
		if _, err := s.versionService.MaybeAutoSave(ctx, uid, existing.ID, existing.Content, content); err != nil {
			s.logger.Warn("auto version check failed",
				zap.Int64(logger.FieldUID, uid),
				zap.Int64(logger.FieldNoteID, existing.ID),
				zap.Error(err),
			)
		}
	}

	note, err := s.noteRepo.GetByID(ctx, params.ID, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(note), nil
}

// List 分页获取笔记列表
func (s *noteService) List(ctx context.Context, uid int64, page, pageSize int) ([]*dto.Note, int64, error) {
	notes, count, err := s.noteRepo.List(ctx, page, pageSize, uid)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	list := make([]*dto.Note, 0, len(notes))
	for _, n := range notes {
		list = append(list, s.domainToDTO(n))
	}
	return list, count, nil
}

// Delete 软删除笔记
func (s *noteService) Delete(ctx context.Context, uid, id int64) error {
	if err := s.noteRepo.SoftDelete(ctx, id, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNoteNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

// PurgeDeletedBefore 清理保留期过后的软删除笔记
// 版本仅随笔记删除级联清除，先删版本再删笔记
func (s *noteService) PurgeDeletedBefore(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	notes, err := s.noteRepo.ListDeletedBefore(ctx, cutoff, limit)
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, note := range notes {
		if err := s.versionRepo.DeleteByNoteID(ctx, note.ID, note.UID); err != nil {
			s.logger.Warn("failed to delete note versions",
				zap.Int64(logger.FieldUID, note.UID),
				zap.Int64(logger.FieldNoteID, note.ID),
				zap.Error(err),
			)
			continue
		}
		if err := s.noteRepo.DeletePhysical(ctx, note.ID, note.UID); err != nil {
			s.logger.Warn("failed to purge note",
				zap.Int64(logger.FieldUID, note.UID),
				zap.Int64(logger.FieldNoteID, note.ID),
				zap.Error(err),
			)
			continue
		}
		purged++
	}
	return purged, nil
}
