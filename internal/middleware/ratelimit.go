// Package middleware 提供 HTTP 中间件
package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/verselab/lyrics-backend/internal/common/response"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	RequestsPerSecond int                       // 每秒允许的请求数
	Burst             int                       // 突发容量
	KeyFunc           func(*gin.Context) string // 自定义键生成函数
}

// DefaultRateLimitConfig 默认限流配置
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		RequestsPerSecond: 100,
		Burst:             200,
		KeyFunc:           nil,
	}
}

// limiterPool 按键保存的令牌桶集合
type limiterPool struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func (p *limiterPool) get(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.limiters[key]
	if !ok {
		l = rate.NewLimiter(p.rps, p.burst)
		p.limiters[key] = l
	}
	return l
}

// RateLimit 进程内令牌桶限流中间件，默认按客户端 IP 限流
func RateLimit(config *RateLimitConfig) gin.HandlerFunc {
	if config == nil {
		config = DefaultRateLimitConfig()
	}

	pool := &limiterPool{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(config.RequestsPerSecond),
		burst:    config.Burst,
	}

	return func(c *gin.Context) {
		var key string
		if config.KeyFunc != nil {
			key = config.KeyFunc(c)
		} else {
			key = c.ClientIP()
		}

		if !pool.get(key).Allow() {
			response.TooManyRequests(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
