package model

import (
	"github.com/quillnotes/quill-notes-service/pkg/timex"
)

// NoteVersion 笔记版本数据库模型
// (note_id, version_number) 上的唯一索引保证同一笔记内版本号不重复，
// 并发追加依赖它做冲突检测
type NoteVersion struct {
	ID                int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	VersionID         string     `gorm:"column:version_id;type:varchar(36);uniqueIndex:udx_version_id" json:"versionId"`
	NoteID            int64      `gorm:"column:note_id;uniqueIndex:udx_note_version,priority:1" json:"noteId"`
	UID               int64      `gorm:"column:uid;index:idx_version_uid" json:"uid"`
	VersionNumber     int64      `gorm:"column:version_number;uniqueIndex:udx_note_version,priority:2" json:"versionNumber"`
	Content           string     `gorm:"column:content" json:"content"`
	ContentHash       string     `gorm:"column:content_hash;type:varchar(64)" json:"contentHash"`
	ChangeDescription string     `gorm:"column:change_description;type:varchar(512)" json:"changeDescription"`
	CreatedAt         timex.Time `gorm:"column:created_at" json:"createdAt"`
}
