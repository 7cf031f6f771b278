package dto

import (
	"github.com/quillnotes/quill-notes-service/pkg/diff"
	"github.com/quillnotes/quill-notes-service/pkg/timex"
)

// NoteVersion 版本完整响应对象
type NoteVersion struct {
	VersionID         string     `json:"versionId"`
	NoteID            int64      `json:"noteId"`
	VersionNumber     int64      `json:"versionNumber"`
	Content           string     `json:"content"`
	ContentHash       string     `json:"contentHash"`
	ChangeDescription string     `json:"changeDescription"`
	CreatedAt         timex.Time `json:"createdAt"`
}

// NoteVersionSummary 版本列表项，不携带内容
type NoteVersionSummary struct {
	VersionNumber     int64      `json:"versionNumber"`
	ChangeDescription string     `json:"changeDescription"`
	CreatedAt         timex.Time `json:"createdAt"`
}

// NoteVersionDiff 两个版本的差异
// Edits 为规范化编辑脚本，HTML 与 Text 为两种渲染
type NoteVersionDiff struct {
	NoteID   int64       `json:"noteId"`
	VersionA int64       `json:"versionA"`
	VersionB int64       `json:"versionB"`
	Edits    []diff.Edit `json:"edits"`
	HTML     string      `json:"html"`
	Text     string      `json:"text"`
}

// VersionListRequest 版本列表请求
type VersionListRequest struct {
	NoteID int64 `json:"noteId" form:"noteId" binding:"required,gt=0"`
}

// VersionCreateRequest 手动创建版本请求
type VersionCreateRequest struct {
	NoteID            int64  `json:"noteId" form:"noteId" binding:"required,gt=0"`
	ChangeDescription string `json:"changeDescription" form:"changeDescription" binding:"max=512"`
}

// VersionGetRequest 获取单个版本请求
type VersionGetRequest struct {
	NoteID        int64 `json:"noteId" form:"noteId" binding:"required,gt=0"`
	VersionNumber int64 `json:"versionNumber" form:"versionNumber" binding:"required,gt=0"`
}

// VersionRestoreRequest 恢复版本请求
type VersionRestoreRequest struct {
	NoteID        int64 `json:"noteId" form:"noteId" binding:"required,gt=0"`
	VersionNumber int64 `json:"versionNumber" form:"versionNumber" binding:"required,gt=0"`
}

// VersionDiffRequest 版本对比请求，版本号 0 表示当前笔记内容
type VersionDiffRequest struct {
	NoteID   int64 `json:"noteId" form:"noteId" binding:"required,gt=0"`
	VersionA int64 `json:"versionA" form:"versionA" binding:"min=0"`
	VersionB int64 `json:"versionB" form:"versionB" binding:"min=0"`
}
