package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces fixed-window per-IP limits backed by Redis. A nil
// limiter (Redis not configured) and a Redis outage both degrade to
// allowing the request; throttling protects capacity, it is not an
// availability dependency.
type RateLimiter struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func NewRateLimiter(rdb *redis.Client, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{rdb: rdb, logger: logger}
}

// Limit allows at most max requests per client IP within the window.
func (rl *RateLimiter) Limit(name string, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.rdb == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("rl:%s:%s", name, c.ClientIP())

		count, err := rl.rdb.Incr(ctx, key).Result()
		if err != nil {
			rl.logger.Warn("rate limiter unavailable", "key", name, "error", err)
			c.Next()
			return
		}

		if count == 1 {
			if err := rl.rdb.Expire(ctx, key, window).Err(); err != nil {
				rl.logger.Warn("rate limiter expire failed", "key", name, "error", err)
			}
		}

		if count > int64(max) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}

		c.Next()
	}
}
