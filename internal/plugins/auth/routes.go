package auth

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/calebmorris/devfolio/internal/middleware"
)

// RegisterRoutes sets up the auth routes. The login POST is rate-limited
// to blunt brute-force and credential-stuffing attempts: 10 per IP per
// minute. The gate middleware is registered separately in app.
func RegisterRoutes(e *echo.Echo, h *Handler, rdb *redis.Client) {
	// The gate allows this path through unauthenticated (and bounces
	// authenticated users to the dashboard before the handler runs).
	e.GET(loginPath, h.LoginForm)

	api := e.Group("/api/auth")
	api.POST("/login", h.Login, middleware.RateLimit(rdb, 10, time.Minute))
	api.GET("/me", h.Me)
	api.POST("/logout", h.Logout)
}
