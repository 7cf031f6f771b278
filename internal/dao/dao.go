// Package dao 实现数据访问层
package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	gormTracing "github.com/haierkeys/gormTracing"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/quillnotes/quill-notes-service/internal/model"
	"github.com/quillnotes/quill-notes-service/pkg/fileurl"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
	RunMode         string
}

// Dao 数据访问对象，持有数据库连接与日志器
type Dao struct {
	db     *gorm.DB
	logger *zap.Logger
}

func New(db *gorm.DB, logger *zap.Logger) *Dao {
	return &Dao{db: db, logger: logger}
}

func (d *Dao) DB() *gorm.DB {
	return d.db
}

func (d *Dao) Logger() *zap.Logger {
	return d.logger
}

// ExecuteWrite 在事务中执行写操作
func (d *Dao) ExecuteWrite(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.db.WithContext(ctx).Transaction(fn)
}

// NewDBEngineWithConfig creates the gorm engine for the configured
// database type, tunes the connection pool and registers the tracing
// plugin.
// NewDBEngineWithConfig 按配置创建数据库引擎并注册链路追踪插件
func NewDBEngineWithConfig(cfg DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	dialector, err := userDialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := gormlogger.Warn
	if cfg.RunMode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   cfg.TablePrefix,
			SingularTable: true,
		},
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "gorm open")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql db")
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)

	_ = db.Use(&gormTracing.OpentracingPlugin{})

	if cfg.AutoMigrate {
		if err := model.AutoMigrateAll(db); err != nil {
			return nil, errors.Wrap(err, "auto migrate")
		}
		if lg != nil {
			lg.Info("database schema migrated", zap.String("type", cfg.Type))
		}
	}

	return db, nil
}

// userDialector 按数据库类型选择驱动
func userDialector(cfg DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Type {
	case "sqlite", "":
		if !fileurl.IsExist(cfg.Path) {
			if err := fileurl.CreatePath(cfg.Path, 0754); err != nil {
				return nil, errors.Wrap(err, "create sqlite path")
			}
		}
		return sqlite.Open(cfg.Path), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.UserName, cfg.Password, cfg.Host, cfg.Name, cfg.Charset, cfg.ParseTime)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
			cfg.UserName, cfg.Password, cfg.Host, cfg.Name)
		return postgres.Open(dsn), nil
	default:
		return nil, errors.Errorf("unsupported database type: %s", cfg.Type)
	}
}
