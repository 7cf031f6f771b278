package model

import (
	"github.com/quillnotes/quill-notes-service/pkg/timex"
)

// Note 笔记数据库模型
type Note struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID         int64      `gorm:"column:uid;index:idx_note_uid" json:"uid"`
	Title       string     `gorm:"column:title;type:varchar(512)" json:"title"`
	Content     string     `gorm:"column:content" json:"content"`
	ContentHash string     `gorm:"column:content_hash;type:varchar(64)" json:"contentHash"`
	IsDeleted   int64      `gorm:"column:is_deleted;default:0;index:idx_note_deleted" json:"isDeleted"`
	CreatedAt   timex.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   timex.Time `gorm:"column:updated_at" json:"updatedAt"`
	DeletedAt   timex.Time `gorm:"column:deleted_at" json:"deletedAt"`
}
