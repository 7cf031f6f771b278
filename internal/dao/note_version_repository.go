package dao

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/quillnotes/quill-notes-service/internal/domain"
	"github.com/quillnotes/quill-notes-service/internal/model"
	"github.com/quillnotes/quill-notes-service/pkg/app"
	"github.com/quillnotes/quill-notes-service/pkg/timex"
)

// ErrVersionNumberConflict is returned when the version-number retry also
// lost the race on the (note_id, version_number) unique index.
// ErrVersionNumberConflict 表示版本号分配重试后仍然冲突
var ErrVersionNumberConflict = errors.New("version number conflict after retry")

// noteVersionRepository 实现 domain.NoteVersionRepository 接口
type noteVersionRepository struct {
	dao *Dao
}

// NewNoteVersionRepository 创建 NoteVersionRepository 实例
func NewNoteVersionRepository(dao *Dao) domain.NoteVersionRepository {
	return &noteVersionRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteVersionRepository) toDomain(m *model.NoteVersion) *domain.NoteVersion {
	if m == nil {
		return nil
	}
	return &domain.NoteVersion{
		ID:                m.ID,
		VersionID:         m.VersionID,
		NoteID:            m.NoteID,
		UID:               m.UID,
		VersionNumber:     m.VersionNumber,
		Content:           m.Content,
		ContentHash:       m.ContentHash,
		ChangeDescription: m.ChangeDescription,
		CreatedAt:         time.Time(m.CreatedAt),
	}
}

func (r *noteVersionRepository) toModel(v *domain.NoteVersion) *model.NoteVersion {
	return &model.NoteVersion{
		VersionID:         v.VersionID,
		NoteID:            v.NoteID,
		UID:               v.UID,
		Content:           v.Content,
		ContentHash:       v.ContentHash,
		ChangeDescription: v.ChangeDescription,
		CreatedAt:         timex.Time(v.CreatedAt),
	}
}

// insertNext assigns version_number = max+1 inside the given transaction
// and inserts the row. The unique index on (note_id, version_number)
// rejects concurrent writers that picked the same number.
// insertNext 在事务内按 max+1 分配版本号并插入
func (r *noteVersionRepository) insertNext(tx *gorm.DB, m *model.NoteVersion) error {
	var maxNumber int64
	err := tx.Model(&model.NoteVersion{}).
		Where("note_id = ? AND uid = ?", m.NoteID, m.UID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&maxNumber).Error
	if err != nil {
		return err
	}
	m.VersionNumber = maxNumber + 1
	return tx.Create(m).Error
}

// isDuplicateVersion 判断错误是否为唯一索引冲突
func isDuplicateVersion(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key")
}

// Append 追加一个新版本，唯一索引冲突时重新取号重试一次
func (r *noteVersionRepository) Append(ctx context.Context, version *domain.NoteVersion) (*domain.NoteVersion, error) {
	m := r.toModel(version)

	err := r.dao.ExecuteWrite(ctx, func(tx *gorm.DB) error {
		return r.insertNext(tx, m)
	})
	if isDuplicateVersion(err) {
		// 整个事务重来一次，重新读取当前最大版本号
		m.ID = 0
		err = r.dao.ExecuteWrite(ctx, func(tx *gorm.DB) error {
			return r.insertNext(tx, m)
		})
		if isDuplicateVersion(err) {
			return nil, ErrVersionNumberConflict
		}
	}
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// AppendWithRestore writes the version content back to the owning note and
// appends the version in one transaction. Either both land or neither does.
// AppendWithRestore 在同一事务内回写笔记内容并追加版本
func (r *noteVersionRepository) AppendWithRestore(ctx context.Context, version *domain.NoteVersion) (*domain.NoteVersion, error) {
	m := r.toModel(version)

	restore := func(tx *gorm.DB) error {
		result := tx.Model(&model.Note{}).
			Where("id = ? AND uid = ? AND is_deleted = 0", m.NoteID, m.UID).
			Updates(map[string]interface{}{
				"content":      m.Content,
				"content_hash": m.ContentHash,
				"updated_at":   timex.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return r.insertNext(tx, m)
	}

	err := r.dao.ExecuteWrite(ctx, restore)
	if isDuplicateVersion(err) {
		m.ID = 0
		err = r.dao.ExecuteWrite(ctx, restore)
		if isDuplicateVersion(err) {
			return nil, ErrVersionNumberConflict
		}
	}
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// GetByNumber 按版本号获取版本
func (r *noteVersionRepository) GetByNumber(ctx context.Context, noteID, versionNumber, uid int64) (*domain.NoteVersion, error) {
	var m model.NoteVersion
	err := r.dao.db.WithContext(ctx).
		Where("note_id = ? AND uid = ? AND version_number = ?", noteID, uid, versionNumber).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetLatest 获取最新版本，无版本时返回 (nil, nil)
func (r *noteVersionRepository) GetLatest(ctx context.Context, noteID, uid int64) (*domain.NoteVersion, error) {
	var m model.NoteVersion
	err := r.dao.db.WithContext(ctx).
		Where("note_id = ? AND uid = ?", noteID, uid).
		Order("version_number DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListByNoteID 按版本号升序分页获取版本列表
func (r *noteVersionRepository) ListByNoteID(ctx context.Context, noteID int64, page, pageSize int, uid int64) ([]*domain.NoteVersion, int64, error) {
	q := r.dao.db.WithContext(ctx).Model(&model.NoteVersion{}).
		Where("note_id = ? AND uid = ?", noteID, uid)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var modelList []*model.NoteVersion
	err := q.Order("version_number ASC").
		Limit(pageSize).
		Offset(app.GetPageOffset(page, pageSize)).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, err
	}

	results := make([]*domain.NoteVersion, 0, len(modelList))
	for _, m := range modelList {
		results = append(results, r.toDomain(m))
	}
	return results, count, nil
}

// DeleteByNoteID 删除笔记的全部版本
func (r *noteVersionRepository) DeleteByNoteID(ctx context.Context, noteID, uid int64) error {
	return r.dao.ExecuteWrite(ctx, func(tx *gorm.DB) error {
		return tx.Where("note_id = ? AND uid = ?", noteID, uid).
			Delete(&model.NoteVersion{}).Error
	})
}

// 确保 noteVersionRepository 实现了 domain.NoteVersionRepository 接口
var _ domain.NoteVersionRepository = (*noteVersionRepository)(nil)
