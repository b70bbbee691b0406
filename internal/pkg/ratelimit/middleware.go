package ratelimit

import (
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/duetodo/internal/pkg/response"
)

// Middleware creates a rate limiting middleware keyed by client IP.
func Middleware(limiter *RateLimiter) gin.HandlerFunc {
	return KeyedMiddleware(limiter, func(c *gin.Context) string { return c.ClientIP() })
}

// KeyedMiddleware creates a rate limiting middleware with custom key function
func KeyedMiddleware(limiter *RateLimiter, keyFunc func(c *gin.Context) string) gin.HandlerFunc {
	limit := strconv.Itoa(limiter.Limit())

	return func(c *gin.Context) {
		key := keyFunc(c)
		if key == "" {
			key = c.ClientIP()
		}

		allowed := limiter.Allow(key)
		resetTime := limiter.GetResetTime(key)

		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Reset", resetTime.UTC().Format(time.RFC3339))

		if !allowed {
			retryAfter := int(math.Ceil(time.Until(resetTime).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.TooManyRequests(c, "Rate limit exceeded. Try again later.", "RATE_LIMITED")
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.GetRemaining(key)))
		c.Next()
	}
}
