// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/quillnotes/quill-notes-service/pkg/util"
)

// AppConfig 应用配置
type AppConfig struct {
	File       string           `yaml:"-"` // 配置文件路径，不序列化
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Database   DatabaseConfig   `yaml:"database"`
	App        AppSettings      `yaml:"app"`
	User       UserConfig       `yaml:"user"`
	Security   SecurityConfig   `yaml:"security"`
	Versioning VersioningConfig `yaml:"versioning"`
	Tracer     TracerConfig     `yaml:"tracer"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址，提供 metrics 与 pprof
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Name 数据库名
	Name string `yaml:"name"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset" default:"utf8mb4"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time" default:"true"`
	// MaxIdleConns 最大闲置连接数
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持 30m、1h 等格式
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultPageSize 默认页面大小
	DefaultPageSize int `yaml:"default-page-size" default:"10"`
	// MaxPageSize 最大页面大小
	MaxPageSize int `yaml:"max-page-size" default:"100"`
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// TrashRetention 软删除笔记保留时间，支持 7d、24h 等格式
	TrashRetention string `yaml:"trash-retention" default:"7d"`
}

// UserConfig 用户配置
type UserConfig struct {
	// RegisterIsEnable 注册是否启用
	RegisterIsEnable bool `yaml:"register-is-enable" default:"true"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	// AuthTokenKey 令牌签名密钥
	AuthTokenKey string `yaml:"auth-token-key" default:"quill-notes-Auth-Token"`
	// TokenExpiry 令牌过期时间，支持 365d、24h、30m 等格式
	TokenExpiry string `yaml:"token-expiry" default:"365d"`
}

// VersioningConfig 版本子系统配置
type VersioningConfig struct {
	// ChangePercentThreshold 自动快照的变化占比阈值
	ChangePercentThreshold float64 `yaml:"change-percent-threshold" default:"0.05"`
	// MinChangedChars 自动快照的绝对变化字符数阈值
	MinChangedChars int `yaml:"min-changed-chars" default:"200"`
	// MinSnapshotInterval 距上一版本超过该时长后小改动也触发快照
	MinSnapshotInterval string `yaml:"min-snapshot-interval" default:"30m"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	if err := yaml.Unmarshal(file, c); err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	// defaults.Set 只有在字段为该类型的零值时才会填充
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}
	return os.WriteFile(c.File, data, 0644)
}

// GetTokenExpiry 解析令牌过期时间
func (c *AppConfig) GetTokenExpiry() time.Duration {
	d, err := util.ParseDuration(c.Security.TokenExpiry)
	if err != nil {
		return 365 * 24 * time.Hour
	}
	return d
}

// GetTrashRetention 解析软删除保留时间
func (c *AppConfig) GetTrashRetention() time.Duration {
	d, err := util.ParseDuration(c.App.TrashRetention)
	if err != nil {
		return 7 * 24 * time.Hour
	}
	return d
}

// GetMinSnapshotInterval 解析自动快照时间间隔阈值
func (c *AppConfig) GetMinSnapshotInterval() time.Duration {
	d, err := util.ParseDuration(c.Versioning.MinSnapshotInterval)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}
