package dao

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/quillnotes/quill-notes-service/internal/domain"
	"github.com/quillnotes/quill-notes-service/internal/model"
	"github.com/quillnotes/quill-notes-service/pkg/app"
	"github.com/quillnotes/quill-notes-service/pkg/timex"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	return &domain.Note{
		ID:          m.ID,
		UID:         m.UID,
		Title:       m.Title,
		Content:     m.Content,
		ContentHash: m.ContentHash,
		IsDeleted:   m.IsDeleted != 0,
		CreatedAt:   time.Time(m.CreatedAt),
		UpdatedAt:   time.Time(m.UpdatedAt),
		DeletedAt:   time.Time(m.DeletedAt),
	}
}

// Create 创建笔记
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := &model.Note{
		UID:         note.UID,
		Title:       note.Title,
		Content:     note.Content,
		ContentHash: note.ContentHash,
		CreatedAt:   timex.Now(),
		UpdatedAt:   timex.Now(),
	}
	err := r.dao.ExecuteWrite(ctx, func(tx *gorm.DB) error {
		return tx.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// GetByID 根据ID获取未删除的笔记
func (r *noteRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Note, error) {
	var m model.Note
	err := r.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ? AND is_deleted = 0", id, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Update 更新笔记标题与内容
func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	return r.dao.ExecuteWrite(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&model.Note{}).
			Where("id = ? AND uid = ? AND is_deleted = 0", note.ID, note.UID).
			Updates(map[string]interface{}{
				"title":        note.Title,
				"content":      note.Content,
				"content_hash": note.ContentHash,
				"updated_at":   timex.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// List 分页获取用户的笔记列表
func (r *noteRepository) List(ctx context.Context, page, pageSize int, uid int64) ([]*domain.Note, int64, error) {
	q := r.dao.db.WithContext(ctx).Model(&model.Note{}).
		Where("uid = ? AND is_deleted = 0", uid)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var modelList []*model.Note
	err := q.Order("updated_at DESC").
		Limit(pageSize).
		Offset(app.GetPageOffset(page, pageSize)).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, err
	}

	results := make([]*domain.Note, 0, len(modelList))
	for _, m := range modelList {
		results = append(results, r.toDomain(m))
	}
	return results, count, nil
}

// SoftDelete 软删除笔记
func (r *noteRepository) SoftDelete(ctx context.Context, id, uid int64) error {
	return r.dao.ExecuteWrite(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&model.Note{}).
			Where("id = ? AND uid = ? AND is_deleted = 0", id, uid).
			Updates(map[string]interface{}{
				"is_deleted": 1,
				"deleted_at": timex.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListDeletedBefore 获取在 cutoff 之前软删除的笔记
func (r *noteRepository) ListDeletedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*domain.Note, error) {
	var modelList []*model.Note
	err := r.dao.db.WithContext(ctx).
		Where("is_deleted = 1 AND deleted_at < ?", timex.Time(cutoff)).
		Limit(limit).
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	results := make([]*domain.Note, 0, len(modelList))
	for _, m := range modelList {
		results = append(results, r.toDomain(m))
	}
	return results, nil
}

// DeletePhysical 物理删除笔记记录
func (r *noteRepository) DeletePhysical(ctx context.Context, id, uid int64) error {
	return r.dao.ExecuteWrite(ctx, func(tx *gorm.DB) error {
		return tx.Where("id = ? AND uid = ?", id, uid).
			Delete(&model.Note{}).Error
	})
}

// 确保 noteRepository 实现了 domain.NoteRepository 接口
var _ domain.NoteRepository = (*noteRepository)(nil)
