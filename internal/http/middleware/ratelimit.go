package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/yungbote/divergex-backend/internal/platform/logger"
)

// RateLimiter enforces a fixed window per client IP. With a Redis client the
// window is shared across instances; without one it degrades to per-process
// counters.
type RateLimiter struct {
	log    *logger.Logger
	rdb    *redis.Client
	limit  int
	window time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(baseLog *logger.Logger, rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		log:     baseLog.With("middleware", "RateLimiter"),
		rdb:     rdb,
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		allowed, err := rl.allow(c, ip)
		if err != nil {
			rl.log.Warn("rate limit check failed, allowing request", "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{"message": "too many requests", "code": "rate_limited"},
			})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(c *gin.Context, ip string) (bool, error) {
	if rl.rdb != nil {
		return rl.allowRedis(c, ip)
	}
	return rl.allowLocal(ip), nil
}

func (rl *RateLimiter) allowRedis(c *gin.Context, ip string) (bool, error) {
	ctx := c.Request.Context()
	key := fmt.Sprintf("ratelimit:%s", ip)
	count, err := rl.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", key, err)
	}
	if count == 1 {
		if err := rl.rdb.Expire(ctx, key, rl.window).Err(); err != nil {
			return false, fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return count <= int64(rl.limit), nil
}

func (rl *RateLimiter) allowLocal(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := time.Now()
	b, ok := rl.buckets[ip]
	if !ok || now.After(b.resetAt) {
		rl.buckets[ip] = &bucket{count: 1, resetAt: now.Add(rl.window)}
		return true
	}
	b.count++
	return b.count <= rl.limit
}
