package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quillnotes/quill-notes-service/pkg/logger"
)

// AccessLogWithLogger 创建访问日志中间件（使用注入的日志器）
func AccessLogWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		startTime := time.Now()
		c.Next()

		lg.Info(path,
			zap.String(logger.FieldMethod, c.Request.Method),
			zap.String(logger.FieldPath, path+"?"+query),
			zap.Int(logger.FieldStatus, c.Writer.Status()),
			zap.Duration(logger.FieldCostTime, time.Since(startTime)),
			zap.String(logger.FieldClientIP, c.ClientIP()),
			zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()),
		)
	}
}
