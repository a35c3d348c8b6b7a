package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/audit"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/internal/infrastructure/cache/redis"
	"github.com/TomDvpmt/80s-90s-Flixx-backend/pkg/logger"
)

// RateLimiter implements a per-IP token bucket rate limiter.
type RateLimiter struct {
	mu              sync.Mutex
	buckets         map[string]*bucket
	rate            float64 // tokens per second
	burst           int     // maximum tokens
	cleanupInterval time.Duration
}

type bucket struct {
	tokens    float64
	lastCheck time.Time
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(rps int, burst int) *RateLimiter {
	rl := &RateLimiter{
		buckets:         make(map[string]*bucket),
		rate:            float64(rps),
		burst:           burst,
		cleanupInterval: 10 * time.Minute,
	}

	go rl.cleanup()

	return rl
}

// Allow checks if a request should be allowed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, exists := rl.buckets[key]
	if !exists {
		rl.buckets[key] = &bucket{
			tokens:    float64(rl.burst) - 1,
			lastCheck: now,
		}
		return true
	}

	// Add tokens based on time passed
	elapsed := now.Sub(b.lastCheck).Seconds()
	b.tokens += elapsed * rl.rate
	if b.tokens > float64(rl.burst) {
		b.tokens = float64(rl.burst)
	}
	b.lastCheck = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}

	return false
}

// cleanup removes old entries periodically.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, b := range rl.buckets {
			if now.Sub(b.lastCheck) > rl.cleanupInterval {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware returns a Gin middleware for rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := GetClientIP(c)

		if !rl.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":             "too_many_requests",
				"error_description": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}

// AuthRateLimiter throttles credential endpoints with a fixed window
// counter in Redis, so the limit holds across replicas. When Redis is
// unavailable the request is allowed rather than locking everyone out.
type AuthRateLimiter struct {
	cache    *redis.Client
	max      int64
	window   time.Duration
	log      logger.Logger
	recorder audit.Recorder
}

// NewAuthRateLimiter creates a rate limiter for auth endpoints.
func NewAuthRateLimiter(cache *redis.Client, max int64, window time.Duration, log logger.Logger, recorder audit.Recorder) *AuthRateLimiter {
	if recorder == nil {
		recorder = audit.Nop()
	}
	return &AuthRateLimiter{
		cache:    cache,
		max:      max,
		window:   window,
		log:      log,
		recorder: recorder,
	}
}

// Middleware returns auth-specific rate limiting keyed by IP and
// endpoint.
func (rl *AuthRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := GetClientIP(c)
		key := fmt.Sprintf("ratelimit:auth:%s:%s", ip, c.Request.URL.Path)

		count, err := rl.cache.IncrWindow(c.Request.Context(), key, rl.window)
		if err != nil {
			rl.log.Warn("auth rate limiter unavailable", logger.Error(err))
			c.Next()
			return
		}

		if count > rl.max {
			rl.recorder.Record(audit.Event{
				Kind:     audit.KindRateLimited,
				ClientIP: ip,
				Detail:   c.Request.URL.Path,
			})
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":             "too_many_requests",
				"error_description": "too many authentication attempts",
			})
			return
		}

		c.Next()
	}
}
