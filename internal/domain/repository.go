package domain

import (
	"context"
	"time"
)

// NoteRepository 笔记存储接口
type NoteRepository interface {
	// Create 创建笔记
	Create(ctx context.Context, note *Note) (*Note, error)
	// GetByID 根据ID获取未删除的笔记，所有权不匹配按不存在处理
	GetByID(ctx context.Context, id, uid int64) (*Note, error)
	// Update 更新笔记标题与内容
	Update(ctx context.Context, note *Note) error
	// List 分页获取用户的笔记列表
	List(ctx context.Context, page, pageSize int, uid int64) ([]*Note, int64, error)
	// SoftDelete 软删除笔记
	SoftDelete(ctx context.Context, id, uid int64) error
	// ListDeletedBefore 获取在 cutoff 之前软删除的笔记，供保留期清理任务使用
	ListDeletedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*Note, error)
	// DeletePhysical 物理删除笔记记录
	DeletePhysical(ctx context.Context, id, uid int64) error
}

// NoteVersionRepository 笔记版本存储接口
// 版本号由存储层在事务内按 max+1 分配，唯一索引冲突重试一次，
// 仍冲突时返回 ErrVersionNumberConflict
type NoteVersionRepository interface {
	// Append 追加一个新版本并分配版本号
	Append(ctx context.Context, version *NoteVersion) (*NoteVersion, error)
	// AppendWithRestore 在同一事务内把版本内容写回笔记并追加新版本，
	// 两步要么都成功要么都不发生
	AppendWithRestore(ctx context.Context, version *NoteVersion) (*NoteVersion, error)
	// GetByNumber 按版本号获取版本，所有权不匹配按不存在处理
	GetByNumber(ctx context.Context, noteID, versionNumber, uid int64) (*NoteVersion, error)
	// GetLatest 获取最新版本，无版本时返回 (nil, nil)
	GetLatest(ctx context.Context, noteID, uid int64) (*NoteVersion, error)
	// ListByNoteID 按版本号升序分页获取版本列表
	ListByNoteID(ctx context.Context, noteID int64, page, pageSize int, uid int64) ([]*NoteVersion, int64, error)
	// DeleteByNoteID 删除笔记的全部版本，仅随笔记删除级联调用
	DeleteByNoteID(ctx context.Context, noteID, uid int64) error
}

// UserRepository 用户存储接口
type UserRepository interface {
	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)
	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)
	// GetByEmail 根据邮箱获取用户，不存在时返回 (nil, nil)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
