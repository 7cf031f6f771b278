// Package domain 定义领域模型和接口
package domain

import "time"

// Note 笔记领域模型
type Note struct {
	ID          int64
	UID         int64
	Title       string
	Content     string
	ContentHash string
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   time.Time
}
