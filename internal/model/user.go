package model

import (
	"github.com/quillnotes/quill-notes-service/pkg/timex"
)

// User 用户数据库模型
type User struct {
	UID       int64      `gorm:"column:uid;primaryKey;autoIncrement" json:"uid"`
	Email     string     `gorm:"column:email;type:varchar(255);uniqueIndex:udx_user_email" json:"email"`
	Nickname  string     `gorm:"column:nickname;type:varchar(128)" json:"nickname"`
	Password  string     `gorm:"column:password;type:varchar(128)" json:"-"`
	CreatedAt timex.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at" json:"updatedAt"`
}
