// Package limiter provides token-bucket rate limiting keyed by request
// path, backed by juju/ratelimit.
package limiter

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

type LimiterIface interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) LimiterIface
}

type BucketRule struct {
	// Key 匹配的请求路径前缀
	Key string
	// FillInterval 令牌填充间隔
	FillInterval time.Duration
	// Capacity 桶容量
	Capacity int64
	// Quantum 每次填充的令牌数
	Quantum int64
}

type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

// MethodLimiter limits by URI path, ignoring the query string.
// MethodLimiter 按请求路径限流，忽略查询参数
type MethodLimiter struct {
	*Limiter
}

var _ LimiterIface = (*MethodLimiter)(nil)

func NewMethodLimiter() LimiterIface {
	return &MethodLimiter{
		Limiter: &Limiter{limiterBuckets: map[string]*ratelimit.Bucket{}},
	}
}

func (l *MethodLimiter) Key(c *gin.Context) string {
	uri := c.Request.RequestURI
	if index := strings.Index(uri, "?"); index >= 0 {
		return uri[:index]
	}
	return uri
}

func (l *MethodLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	for prefix, bucket := range l.limiterBuckets {
		if strings.HasPrefix(key, prefix) {
			return bucket, true
		}
	}
	return nil, false
}

func (l *MethodLimiter) AddBuckets(rules ...BucketRule) LimiterIface {
	for _, rule := range rules {
		if _, ok := l.limiterBuckets[rule.Key]; !ok {
			l.limiterBuckets[rule.Key] = ratelimit.NewBucketWithQuantum(
				rule.FillInterval, rule.Capacity, rule.Quantum)
		}
	}
	return l
}
