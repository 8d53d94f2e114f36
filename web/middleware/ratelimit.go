package middleware

import (
	"net/http"
	"time"

	"github.com/yukkurinet/hyakki-portal/logger"
	"github.com/yukkurinet/hyakki-portal/web/cache"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig configures the per-client request budget.
type RateLimitConfig struct {
	RequestsPerMinute int
	KeyFunc           func(c *gin.Context) string
}

// DefaultRateLimitConfig limits by client IP.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: 30,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimit counts requests per key and path in Redis over a one-minute
// window. A counting failure lets the request through.
func RateLimit(config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + config.KeyFunc(c) + ":" + c.Request.URL.Path

		count, err := cache.IncrWithTTL(key, time.Minute)
		if err != nil {
			logger.Warning("rate limit counter error:", err)
			c.Next()
			return
		}

		if count > int64(config.RequestsPerMinute) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}

		c.Next()
	}
}
