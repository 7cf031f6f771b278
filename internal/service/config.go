// Package service 实现业务逻辑层
package service

import (
	"time"
)

// VersioningConfig 版本子系统配置
type VersioningConfig struct {
	// ChangePercentThreshold 自动快照的变化占比阈值
	ChangePercentThreshold float64
	// MinChangedChars 自动快照的绝对变化字符数阈值
	MinChangedChars int
	// MinSnapshotInterval 距上一版本超过该时长后小改动也会触发快照
	MinSnapshotInterval time.Duration
	// TrashRetention 软删除笔记的保留期，过期后物理清除并级联删除版本
	TrashRetention time.Duration
}

// ServiceConfig 服务层配置
type ServiceConfig struct {
	// RegisterEnabled 是否开放注册
	RegisterEnabled bool
	// DefaultPageSize 默认分页大小
	DefaultPageSize int
	// MaxPageSize 最大分页大小
	MaxPageSize int
	// Versioning 版本子系统配置
	Versioning VersioningConfig
}

// DefaultServiceConfig 返回默认服务配置
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		RegisterEnabled: true,
		DefaultPageSize: 10,
		MaxPageSize:     100,
		Versioning: VersioningConfig{
			ChangePercentThreshold: 0.05,
			MinChangedChars:        200,
			MinSnapshotInterval:    30 * time.Minute,
			TrashRetention:         7 * 24 * time.Hour,
		},
	}
}
