package audit

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler serves the admin activity feed as JSON.
type Handler struct {
	service Service
}

// NewHandler creates a new audit handler with the given service.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Activity returns a page of recent events (GET /api/admin/activity?page=N).
func (h *Handler) Activity(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	events, total, err := h.service.RecentActivity(c.Request().Context(), page)
	if err != nil {
		return err
	}

	if events == nil {
		events = []Event{}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"events": events,
		"total":  total,
	})
}
