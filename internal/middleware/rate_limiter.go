package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/voxatlas/weather-location-backend/pkg/metrics"
)

// RateLimiter caps requests per client IP inside a fixed window. The
// public Nominatim instance allows one request per second, so the API
// in front of it has to push back before the upstream does.
type RateLimiter struct {
	clients map[string]*ClientRateLimit
	mu      sync.RWMutex
	logger  *logrus.Logger
	metrics *metrics.Metrics
	limit   int
	window  time.Duration
}

// ClientRateLimit tracks rate limit info for a client
type ClientRateLimit struct {
	count     int
	lastReset time.Time
	mu        sync.Mutex
}

// NewRateLimiter creates a new rate limiter
// limit: maximum requests per window
// window: time window for rate limiting
func NewRateLimiter(limit int, window time.Duration, m *metrics.Metrics, logger *logrus.Logger) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*ClientRateLimit),
		logger:  logger,
		metrics: m,
		limit:   limit,
		window:  window,
	}

	// Cleanup goroutine to remove old entries
	go rl.cleanup()

	return rl
}

// Middleware returns a gin middleware handler
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		allowed := rl.allowRequest(clientIP)
		rl.metrics.RecordRateLimit(clientIP, allowed)

		if !allowed {
			rl.logger.WithFields(logrus.Fields{
				"client_ip":  clientIP,
				"request_id": GetRequestID(c),
				"path":       c.Request.URL.Path,
			}).Warn("Rate limit exceeded")

			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"message":     "Too many requests. Please try again later.",
				"retry_after": rl.window.Seconds(),
			})
			return
		}

		c.Next()
	}
}

// allowRequest checks if a request should be allowed
func (rl *RateLimiter) allowRequest(clientIP string) bool {
	rl.mu.Lock()
	client, exists := rl.clients[clientIP]
	if !exists {
		client = &ClientRateLimit{
			count:     0,
			lastReset: time.Now(),
		}
		rl.clients[clientIP] = client
	}
	rl.mu.Unlock()

	client.mu.Lock()
	defer client.mu.Unlock()

	if time.Since(client.lastReset) > rl.window {
		client.count = 0
		client.lastReset = time.Now()
	}

	if client.count >= rl.limit {
		return false
	}

	client.count++
	return true
}

// cleanup periodically removes old entries
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, client := range rl.clients {
			client.mu.Lock()
			if now.Sub(client.lastReset) > rl.window*2 {
				delete(rl.clients, ip)
			}
			client.mu.Unlock()
		}
		rl.mu.Unlock()
	}
}

// GetStats returns current rate limiter statistics
func (rl *RateLimiter) GetStats() map[string]interface{} {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	return map[string]interface{}{
		"total_clients": len(rl.clients),
		"limit":         rl.limit,
		"window":        rl.window.String(),
	}
}
