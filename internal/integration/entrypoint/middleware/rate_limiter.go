// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed requests per window.
	defaultMaxAttempts = 120
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
)

// RateLimiter is an IP-based rate limiter backed by Redis, so the limit
// holds across every replica instead of per-process.
type RateLimiter struct {
	client         *redis.Client
	maxAttempts    int
	windowDuration time.Duration
}

// NewRateLimiter creates a rate limiter with default settings.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client, maxAttempts: defaultMaxAttempts, windowDuration: defaultWindowDuration}
}

// NewRateLimiterWithConfig creates a rate limiter with custom settings.
func NewRateLimiterWithConfig(client *redis.Client, maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{client: client, maxAttempts: maxAttempts, windowDuration: windowDuration}
}

// Middleware returns a Gin middleware handler that enforces the limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		allowed, err := rl.allow(c.Request.Context(), clientIP)
		if err != nil {
			// Redis being unreachable should not take the API down; fail open.
			c.Next()
			return
		}
		if !allowed {
			c.JSON(http.StatusTooManyRequests, dto.Fail(dto.CodeRateLimited, "too many requests, please try again later"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// allow increments the counter for key and reports whether it is still
// within the window's limit, using INCR + an EXPIRE set only on the
// first hit so the window is a fixed, not sliding, interval.
func (rl *RateLimiter) allow(ctx context.Context, key string) (bool, error) {
	redisKey := "ratelimit:" + key

	count, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		rl.client.Expire(ctx, redisKey, rl.windowDuration)
	}

	return count <= int64(rl.maxAttempts), nil
}
