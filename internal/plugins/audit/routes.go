package audit

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the activity feed on the given admin API group.
// The group is expected to already enforce the ADMIN role.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("/activity", h.Activity)
}
