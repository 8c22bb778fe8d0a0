package contact

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/calebmorris/devfolio/internal/middleware"
)

// RegisterRoutes mounts the public contact page and submit endpoint on
// the root router, and the inbox endpoints on the admin API group. The
// submit endpoint is rate limited to blunt form spam.
func RegisterRoutes(e *echo.Echo, adminAPI *echo.Group, h *Handler, rdb *redis.Client) {
	e.GET("/contact", h.Form)
	e.POST("/api/contact", h.Submit, middleware.RateLimit(rdb, 5, time.Minute))

	g := adminAPI.Group("/messages")
	g.GET("", h.List)
	g.PUT("/:id/read", h.MarkRead)
	g.DELETE("/:id", h.Delete)
}
