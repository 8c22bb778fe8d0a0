package portfolio

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the public portfolio pages on the root router and
// the project CRUD endpoints on the admin API group.
func RegisterRoutes(e *echo.Echo, adminAPI *echo.Group, h *Handler) {
	e.GET("/portfolio", h.Index)
	e.GET("/portfolio/:slug", h.Show)

	g := adminAPI.Group("/projects")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
