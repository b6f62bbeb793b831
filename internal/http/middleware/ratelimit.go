package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Limiter produces per-route rate limiting middleware.
type Limiter interface {
	Limit(name string, maxRequests int, window time.Duration) gin.HandlerFunc
}

type clientInfo struct {
	last  time.Time
	count int
}

// MemoryLimiter is the single-instance fallback used when Redis is not configured.
type MemoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
	now     func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{clients: make(map[string]*clientInfo), now: time.Now}
}

// Limit blocks callers that send more than maxRequests per window.
func (l *MemoryLimiter) Limit(name string, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := name + ":" + callerKey(c)
		now := l.now()

		l.mu.Lock()
		ci, ok := l.clients[key]
		if !ok || now.Sub(ci.last) > window {
			l.clients[key] = &clientInfo{last: now, count: 1}
			l.mu.Unlock()
			RLRequests.WithLabelValues(c.FullPath()).Inc()
			c.Next()
			return
		}
		ci.count++
		count := ci.count
		l.mu.Unlock()

		if count > maxRequests {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			tooManyRequests(c, window)
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}

// Sweep drops windows idle for longer than maxAge.
func (l *MemoryLimiter) Sweep(maxAge time.Duration) {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, ci := range l.clients {
		if now.Sub(ci.last) > maxAge {
			delete(l.clients, k)
		}
	}
}
