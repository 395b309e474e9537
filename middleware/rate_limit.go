package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"swiftaid/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Redis     *redis.Client
	Requests  int           // Number of requests allowed
	Window    time.Duration // Time window
	KeyPrefix string        // Redis key prefix
}

// RateLimiter is a Redis sliding-window limiter keyed by client IP. Without
// a Redis client, or when Redis fails, requests are let through.
type RateLimiter struct {
	config RateLimitConfig
}

func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyPrefix == "" {
		config.KeyPrefix = "rate_limit"
	}
	return &RateLimiter{config: config}
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		if rl.config.Redis == nil || rl.config.Requests <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:ip:%s", rl.config.KeyPrefix, c.ClientIP())

		allowed, remaining, err := rl.checkRateLimit(c.Request.Context(), key)
		if err != nil {
			logrus.Errorf("Rate limit check failed: %v", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(rl.config.Window.Seconds())))
			c.Error(utils.NewRateLimitError())
			c.Abort()
			return
		}

		c.Next()
	})
}

// checkRateLimit records the request in a sorted set of request times and
// counts those still inside the window.
func (rl *RateLimiter) checkRateLimit(ctx context.Context, key string) (bool, int, error) {
	now := time.Now()
	window := rl.config.Window
	member := fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString())

	pipe := rl.config.Redis.Pipeline()

	expiredBefore := now.Add(-window).UnixNano()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(expiredBefore, 10))
	count := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, &redis.Z{
		Score:  float64(now.UnixNano()),
		Member: member,
	})
	pipe.Expire(ctx, key, window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	current := count.Val()
	remaining := rl.config.Requests - int(current) - 1
	if remaining < 0 {
		remaining = 0
	}

	allowed := current < int64(rl.config.Requests)
	if !allowed {
		rl.config.Redis.ZRem(ctx, key, member)
	}

	return allowed, remaining, nil
}
