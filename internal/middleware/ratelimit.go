// Package middleware provides HTTP middleware for the devfolio Echo server.
// ratelimit.go implements a per-IP fixed-window rate limiter backed by
// Redis, applied to the login and contact-form endpoints.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimit returns middleware that limits requests per IP to maxRequests
// within the given window. Counters live in Redis (INCR + EXPIRE on the
// first hit of a window), so limits hold across instances. Returns 429
// when exceeded.
//
// Redis errors fail open with a warning: a rate-limiter outage should
// degrade to no limiting, not take down login or the contact form.
func RateLimit(rdb *redis.Client, maxRequests int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("ratelimit:%s:%s", c.Path(), c.RealIP())

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				slog.Warn("rate limiter unavailable, allowing request",
					slog.String("key", key),
					slog.Any("error", err),
				)
				return next(c)
			}
			if count == 1 {
				// First hit in this window starts the clock.
				if err := rdb.Expire(ctx, key, window).Err(); err != nil {
					slog.Warn("failed to set rate limit window",
						slog.String("key", key),
						slog.Any("error", err),
					)
				}
			}

			if count > int64(maxRequests) {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error":   "Too Many Requests",
					"message": "Rate limit exceeded. Please try again later.",
				})
			}

			return next(c)
		}
	}
}
