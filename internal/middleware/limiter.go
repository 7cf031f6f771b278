package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/quillnotes/quill-notes-service/pkg/app"
	"github.com/quillnotes/quill-notes-service/pkg/code"
	"github.com/quillnotes/quill-notes-service/pkg/limiter"
)

// RateLimiter 创建限流中间件（支持依赖注入）
func RateLimiter(l limiter.LimiterIface) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.Key(c)
		if bucket, ok := l.GetBucket(key); ok {
			if bucket.TakeAvailable(1) == 0 {
				response := app.NewResponse(c)
				response.ToResponse(code.ErrorTooManyRequests)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
