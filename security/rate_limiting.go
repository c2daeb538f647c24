package security

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles the control surface with a fixed window per client
// IP, counted in Redis. With no Redis client it degrades to a no-op so the
// simulator stays usable in single-box setups.
type RateLimiter struct {
	redis  *redis.Client
	limit  int64
	window time.Duration
}

func NewRateLimiter(redisClient *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		limit:  limit,
		window: window,
	}
}

// ControlRateLimit limits state-changing control requests per client IP.
func (r *RateLimiter) ControlRateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if r.redis == nil {
				return next(c)
			}

			ctx := c.Request().Context()
			key := fmt.Sprintf("ratelimit:control:%s", c.RealIP())

			count, err := r.redis.Incr(ctx, key).Result()
			if err == nil {
				if count == 1 {
					r.redis.Expire(ctx, key, r.window)
				}
				if count > r.limit {
					return c.JSON(429, map[string]string{
						"error": "Rate limit exceeded. Please try again later.",
					})
				}
			}
			// A Redis hiccup never blocks control traffic.

			return next(c)
		}
	}
}
