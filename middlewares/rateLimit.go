package middlewares

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type limiterPool struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

var pool = limiterPool{limiters: make(map[string]*rate.Limiter)}

func (p *limiterPool) get(key string, r rate.Limit, b int) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	limiter, ok := p.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(r, b)
		p.limiters[key] = limiter
	}
	return limiter
}

// RateLimitMiddleware applies a token-bucket limit per key. The key
// function decides the bucket granularity (client IP in release mode,
// route path in debug).
func RateLimitMiddleware(r rate.Limit, b int, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := pool.get(keyFunc(c), r, b)

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please slow down :("})
			return
		}

		c.Next()
	}
}
