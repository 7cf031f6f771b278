package dto

import (
	"github.com/quillnotes/quill-notes-service/pkg/timex"
)

// User 用户响应对象
type User struct {
	UID       int64      `json:"uid"`
	Email     string     `json:"email"`
	Nickname  string     `json:"nickname"`
	Token     string     `json:"token,omitempty"`
	CreatedAt timex.Time `json:"createdAt"`
}

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email,max=255"`
	Password string `json:"password" form:"password" binding:"required,min=6,max=64"`
	Nickname string `json:"nickname" form:"nickname" binding:"max=128"`
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}
