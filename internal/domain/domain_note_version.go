package domain

import "time"

// NoteVersion 笔记版本领域模型，一条不可变的内容快照
type NoteVersion struct {
	ID int64
	// VersionID 对外暴露的稳定标识，由服务层生成的 UUID
	VersionID string
	NoteID    int64
	UID       int64
	// VersionNumber 笔记内单调递增的版本号，从 1 开始连续
	VersionNumber     int64
	Content           string
	ContentHash       string
	ChangeDescription string
	CreatedAt         time.Time
}
