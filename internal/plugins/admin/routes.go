package admin

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the admin pages. The auth gate guards the whole
// /admin subtree before these handlers run.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/admin/dashboard", h.Dashboard)
	e.GET("/admin/posts", h.Posts)
	e.GET("/admin/messages", h.Messages)
}
