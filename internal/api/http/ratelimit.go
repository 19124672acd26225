package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
)

// RateLimiter bounds request rates per client IP using a Redis fixed
// window (INCR + EXPIRE). When Redis is unreachable, requests pass:
// availability over enforcement.
type RateLimiter struct {
	client *redis.Client
	window time.Duration
	logger *zap.Logger
}

// NewRateLimiter builds a limiter. client may be nil, which disables
// limiting entirely.
func NewRateLimiter(client *redis.Client, window time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{client: client, window: window, logger: logger}
}

// Limit returns a middleware allowing max requests per window per
// client IP within the named scope.
func (rl *RateLimiter) Limit(scope string, max int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl.client == nil || max <= 0 {
			return c.Next()
		}

		key := fmt.Sprintf("helpdesk:ratelimit:%s:%s", scope, c.IP())
		ctx := c.UserContext()

		count, err := rl.client.Incr(ctx, key).Result()
		if err != nil {
			rl.logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			if err := rl.client.Expire(ctx, key, rl.window).Err(); err != nil {
				rl.logger.Warn("rate limiter expire failed", zap.Error(err))
			}
		}

		if count > int64(max) {
			c.Status(http.StatusTooManyRequests)
			return c.JSON(dto.Failure("RATE_LIMITED", "Too many requests, please try again later", nil))
		}
		return c.Next()
	}
}
