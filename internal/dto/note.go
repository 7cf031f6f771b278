// Package dto 定义接口层数据传输对象
package dto

import (
	"github.com/quillnotes/quill-notes-service/pkg/timex"
)

// Note 笔记响应对象
type Note struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	ContentHash string     `json:"contentHash"`
	CreatedAt   timex.Time `json:"createdAt"`
	UpdatedAt   timex.Time `json:"updatedAt"`
}

// NoteCreateRequest 创建笔记请求
type NoteCreateRequest struct {
	Title   string `json:"title" form:"title" binding:"required,notblank,max=512"`
	Content string `json:"content" form:"content"`
}

// NoteUpdateRequest 更新笔记请求，内容变化会触发自动版本判定
type NoteUpdateRequest struct {
	ID      int64  `json:"id" form:"id" binding:"required,gt=0"`
	Title   string `json:"title" form:"title" binding:"required,notblank,max=512"`
	Content string `json:"content" form:"content"`
}

// NoteGetRequest 获取笔记请求
type NoteGetRequest struct {
	ID int64 `json:"id" form:"id" binding:"required,gt=0"`
}

// NoteDeleteRequest 删除笔记请求
type NoteDeleteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required,gt=0"`
}
