package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/quillnotes/quill-notes-service/internal/dao"
	"github.com/quillnotes/quill-notes-service/internal/domain"
	"github.com/quillnotes/quill-notes-service/internal/dto"
	"github.com/quillnotes/quill-notes-service/pkg/code"
	"github.com/quillnotes/quill-notes-service/pkg/diff"
	"github.com/quillnotes/quill-notes-service/pkg/logger"
	"github.com/quillnotes/quill-notes-service/pkg/timex"
	"github.com/quillnotes/quill-notes-service/pkg/util"
)

// 版本描述文案
const (
	autoSaveDescription   = "Auto-saved version"
	manualSaveDescription = "Manual save"
)

// CurrentVersionNumber is the sentinel diff operand meaning the note's
// current live content rather than a stored version.
// CurrentVersionNumber 是表示当前笔记内容的哨兵版本号
const CurrentVersionNumber = 0

// NoteVersionService 笔记版本服务接口
// NoteVersionService is the note version subsystem: snapshot creation
// (manual and significance-gated automatic), history reads, diffing and
// restore-as-new-version.
type NoteVersionService interface {
	// Create 以当前笔记内容手动创建一个版本，不经过变化判定
	Create(ctx context.Context, uid int64, params *dto.VersionCreateRequest) (*dto.NoteVersion, error)
	// MaybeAutoSave 在内容更新时判定变化是否足够显著，是则自动创建版本
	// 返回创建的版本，不显著时返回 (nil, nil)
	MaybeAutoSave(ctx context.Context, uid, noteID int64, previousLive, newContent string) (*dto.NoteVersion, error)
	// Get 获取单个版本（含内容）
	Get(ctx context.Context, uid int64, params *dto.VersionGetRequest) (*dto.NoteVersion, error)
	// List 按版本号升序分页获取版本摘要（不含内容）
	List(ctx context.Context, uid, noteID int64, page, pageSize int) ([]*dto.NoteVersionSummary, int64, error)
	// Diff 对比两个版本，版本号 0 表示当前笔记内容
	Diff(ctx context.Context, uid int64, params *dto.VersionDiffRequest) (*dto.NoteVersionDiff, error)
	// Restore 把历史版本内容写回笔记并追加一个新版本，两步原子完成
	Restore(ctx context.Context, uid int64, params *dto.VersionRestoreRequest) (*dto.NoteVersion, error)
}

type noteVersionService struct {
	noteRepo    domain.NoteRepository
	versionRepo domain.NoteVersionRepository
	evaluator   *diff.SignificanceEvaluator
	logger      *zap.Logger
	config      *ServiceConfig
	sf          singleflight.Group
}

var _ NoteVersionService = (*noteVersionService)(nil)

// NewNoteVersionService 创建 NoteVersionService 实例
func NewNoteVersionService(noteRepo domain.NoteRepository, versionRepo domain.NoteVersionRepository, lg *zap.Logger, cfg *ServiceConfig) NoteVersionService {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}
	return &noteVersionService{
		noteRepo:    noteRepo,
		versionRepo: versionRepo,
		evaluator: diff.NewSignificanceEvaluator(diff.SignificanceConfig{
			ChangedPercentThreshold: cfg.Versioning.ChangePercentThreshold,
			MinChangedChars:         cfg.Versioning.MinChangedChars,
			MinSnapshotInterval:     cfg.Versioning.MinSnapshotInterval,
		}),
		logger: lg,
		config: cfg,
	}
}

// domainToDTO 领域模型转响应对象
func (s *noteVersionService) domainToDTO(v *domain.NoteVersion) *dto.NoteVersion {
	if v == nil {
		return nil
	}
	return &dto.NoteVersion{
		VersionID:         v.VersionID,
		NoteID:            v.NoteID,
		VersionNumber:     v.VersionNumber,
		Content:           v.Content,
		ContentHash:       v.ContentHash,
		ChangeDescription: v.ChangeDescription,
		CreatedAt:         timex.Time(v.CreatedAt),
	}
}

// newVersion 构造一个待追加的版本，VersionID 与 CreatedAt 由服务层生成
func (s *noteVersionService) newVersion(noteID, uid int64, content, description string) *domain.NoteVersion {
	return &domain.NoteVersion{
		VersionID:         uuid.New().String(),
		NoteID:            noteID,
		UID:               uid,
		Content:           content,
		ContentHash:       util.EncodeMD5(content),
		ChangeDescription: description,
		CreatedAt:         time.Now(),
	}
}

// mapAppendError 把存储层错误映射为响应码
func (s *noteVersionService) mapAppendError(err error) error {
	switch {
	case errors.Is(err, dao.ErrVersionNumberConflict):
		return code.ErrorVersionConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return code.ErrorNoteNotFound
	default:
		return code.ErrorVersionCreateFailed.WithDetails(err.Error())
	}
}

// Create 手动创建版本
func (s *noteVersionService) Create(ctx context.Context, uid int64, params *dto.VersionCreateRequest) (*dto.NoteVersion, error) {
	note, err := s.noteRepo.GetByID(ctx, params.NoteID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	description := params.ChangeDescription
	if description == "" {
		description = manualSaveDescription
	}

	created, err := s.versionRepo.Append(ctx, s.newVersion(note.ID, uid, note.Content, description))
	if err != nil {
		return nil, s.mapAppendError(err)
	}

	versionCreatedCounter.WithLabelValues("manual").Inc()
	s.logger.Info("note version created",
		zap.Int64(logger.FieldUID, uid),
		zap.Int64(logger.FieldNoteID, note.ID),
		zap.Int64(logger.FieldVersionNumber, created.VersionNumber),
		zap.String("trigger", "manual"),
	)
	return s.domainToDTO(created), nil
}

// MaybeAutoSave 自动版本判定
// previousLive 为更新前的笔记内容，作为没有任何历史版本时的对比基线。
// singleflight 的 key 含内容哈希，只合并内容完全相同的并发判定；
// 不同内容的并发编辑各自判定，由存储层唯一索引串行取号。
func (s *noteVersionService) MaybeAutoSave(ctx context.Context, uid, noteID int64, previousLive, newContent string) (*dto.NoteVersion, error) {
	key := fmt.Sprintf("autosave:%d:%d:%s", uid, noteID, util.EncodeMD5(newContent))
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.autoSave(ctx, uid, noteID, previousLive, newContent)
	})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	created, ok := v.(*dto.NoteVersion)
	if !ok {
		return nil, nil
	}
	return created, nil
}

func (s *noteVersionService) autoSave(ctx context.Context, uid, noteID int64, previousLive, newContent string) (interface{}, error) {
	// 先确认笔记存在且归属当前用户，版本不能挂在不存在的笔记上
	if _, err := s.noteRepo.GetByID(ctx, noteID, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	previous := previousLive
	var lastVersionAt time.Time

	latest, err := s.versionRepo.GetLatest(ctx, noteID, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if latest != nil {
		previous = latest.Content
		lastVersionAt = latest.CreatedAt
	}

	if !s.evaluator.IsSignificant(previous, newContent, lastVersionAt) {
		return nil, nil
	}

	created, err := s.versionRepo.Append(ctx, s.newVersion(noteID, uid, newContent, autoSaveDescription))
	if err != nil {
		return nil, s.mapAppendError(err)
	}

	versionCreatedCounter.WithLabelValues("auto").Inc()
	s.logger.Info("note version created",
		zap.Int64(logger.FieldUID, uid),
		zap.Int64(logger.FieldNoteID, noteID),
		zap.Int64(logger.FieldVersionNumber, created.VersionNumber),
		zap.String("trigger", "auto"),
	)
	return s.domainToDTO(created), nil
}

// Get 获取单个版本
func (s *noteVersionService) Get(ctx context.Context, uid int64, params *dto.VersionGetRequest) (*dto.NoteVersion, error) {
	version, err := s.versionRepo.GetByNumber(ctx, params.NoteID, params.VersionNumber, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorVersionNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(version), nil
}

// List 分页获取版本摘要
func (s *noteVersionService) List(ctx context.Context, uid, noteID int64, page, pageSize int) ([]*dto.NoteVersionSummary, int64, error) {
	// 先确认笔记归属，避免对他人笔记暴露版本数量
	if _, err := s.noteRepo.GetByID(ctx, noteID, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, code.ErrorNoteNotFound
		}
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	versions, count, err := s.versionRepo.ListByNoteID(ctx, noteID, page, pageSize, uid)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	list := make([]*dto.NoteVersionSummary, 0, len(versions))
	for _, v := range versions {
		list = append(list, &dto.NoteVersionSummary{
			VersionNumber:     v.VersionNumber,
			ChangeDescription: v.ChangeDescription,
			CreatedAt:         timex.Time(v.CreatedAt),
		})
	}
	return list, count, nil
}

// resolveContent 解析 diff 操作数对应的内容，0 为当前笔记内容
func (s *noteVersionService) resolveContent(ctx context.Context, uid, noteID, versionNumber int64) (string, error) {
	if versionNumber < CurrentVersionNumber {
		return "", code.ErrorInvalidParams.WithDetails("version number must not be negative")
	}
	if versionNumber == CurrentVersionNumber {
		note, err := s.noteRepo.GetByID(ctx, noteID, uid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", code.ErrorNoteNotFound
			}
			return "", code.ErrorDBQuery.WithDetails(err.Error())
		}
		return note.Content, nil
	}

	version, err := s.versionRepo.GetByNumber(ctx, noteID, versionNumber, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", code.ErrorVersionNotFound
		}
		return "", code.ErrorDBQuery.WithDetails(err.Error())
	}
	return version.Content, nil
}

// Diff 对比两个版本
func (s *noteVersionService) Diff(ctx context.Context, uid int64, params *dto.VersionDiffRequest) (*dto.NoteVersionDiff, error) {
	contentA, err := s.resolveContent(ctx, uid, params.NoteID, params.VersionA)
	if err != nil {
		return nil, err
	}
	contentB, err := s.resolveContent(ctx, uid, params.NoteID, params.VersionB)
	if err != nil {
		return nil, err
	}

	result := diff.Compute(contentA, contentB)
	diffRequestCounter.Inc()
	return &dto.NoteVersionDiff{
		NoteID:   params.NoteID,
		VersionA: params.VersionA,
		VersionB: params.VersionB,
		Edits:    result.Edits(),
		HTML:     result.HTML(),
		Text:     result.Text(),
	}, nil
}

// Restore 恢复到历史版本
// 写回与追加在同一事务内完成，成功后历史中多出一个
// "Restored from version N" 的新版本，原有版本不受影响。
func (s *noteVersionService) Restore(ctx context.Context, uid int64, params *dto.VersionRestoreRequest) (*dto.NoteVersion, error) {
	source, err := s.versionRepo.GetByNumber(ctx, params.NoteID, params.VersionNumber, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorVersionNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	description := fmt.Sprintf("Restored from version %d", source.VersionNumber)
	created, err := s.versionRepo.AppendWithRestore(ctx, s.newVersion(params.NoteID, uid, source.Content, description))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, code.ErrorNoteNotFound
		case errors.Is(err, dao.ErrVersionNumberConflict):
			return nil, code.ErrorVersionConflict
		default:
			return nil, code.ErrorVersionRestorePartial.WithDetails(err.Error())
		}
	}

	versionRestoredCounter.Inc()
	s.logger.Info("note version restored",
		zap.Int64(logger.FieldUID, uid),
		zap.Int64(logger.FieldNoteID, params.NoteID),
		zap.Int64("source_version", source.VersionNumber),
		zap.Int64(logger.FieldVersionNumber, created.VersionNumber),
	)
	return s.domainToDTO(created), nil
}
