package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"editor-media-backend/internal/config"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitManager keeps a per-IP limiter map with periodic cleanup of
// idle entries.
type RateLimitManager struct {
	visitors   map[string]*visitor
	visitorsMu sync.Mutex
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

func NewRateLimitManager(ctx context.Context) *RateLimitManager {
	managerCtx, cancel := context.WithCancel(ctx)

	m := &RateLimitManager{
		visitors: make(map[string]*visitor),
		ctx:      managerCtx,
		cancel:   cancel,
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

// GetVisitor retrieves or creates a rate limiter for the given IP.
func (m *RateLimitManager) GetVisitor(ip string, requestsPerWindow, windowSeconds, burst int) *rate.Limiter {
	if requestsPerWindow <= 0 {
		return nil
	}

	m.visitorsMu.Lock()
	defer m.visitorsMu.Unlock()

	if v, exists := m.visitors[ip]; exists {
		v.lastSeen = time.Now()
		return v.limiter
	}

	if windowSeconds <= 0 {
		windowSeconds = 60
	}
	if burst <= 0 {
		burst = requestsPerWindow
	}

	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerWindow)/float64(windowSeconds)), burst)
	m.visitors[ip] = &visitor{limiter: limiter, lastSeen: time.Now()}
	return limiter
}

func (m *RateLimitManager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.visitorsMu.Lock()
			for ip, v := range m.visitors {
				if time.Since(v.lastSeen) > 10*time.Minute {
					delete(m.visitors, ip)
				}
			}
			m.visitorsMu.Unlock()
		}
	}
}

// Shutdown stops the cleanup loop.
func (m *RateLimitManager) Shutdown() {
	m.cancel()
	m.wg.Wait()
}

// RateLimitMiddleware limits request rate per client IP.
func RateLimitMiddleware(cfg *config.Config, manager *RateLimitManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if manager == nil {
			c.Next()
			return
		}

		limiter := manager.GetVisitor(
			c.ClientIP(),
			cfg.RateLimitRequests,
			cfg.RateLimitWindow,
			cfg.RateLimitBurst,
		)
		if limiter == nil {
			c.Next()
			return
		}

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
