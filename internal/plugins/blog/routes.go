package blog

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the public blog pages on the root router and the
// post CRUD endpoints on the admin API group. The admin group is expected
// to carry role enforcement already.
func RegisterRoutes(e *echo.Echo, adminAPI *echo.Group, h *Handler) {
	e.GET("/blog", h.Index)
	e.GET("/blog/:slug", h.Show)

	g := adminAPI.Group("/posts")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
