package portfolio

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/calebmorris/devfolio/internal/middleware"
	"github.com/calebmorris/devfolio/internal/plugins/audit"
	"github.com/calebmorris/devfolio/internal/plugins/auth"
)

// Handler handles HTTP requests for portfolio projects.
type Handler struct {
	service Service
	audit   audit.Service
}

// NewHandler creates a new portfolio handler.
func NewHandler(service Service, auditSvc audit.Service) *Handler {
	return &Handler{service: service, audit: auditSvc}
}

// --- Public pages ---

// Index renders the public portfolio listing.
func (h *Handler) Index(c echo.Context) error {
	projects, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return middleware.Render(c, http.StatusOK, ListPage(projects))
}

// Show renders a single project by slug.
func (h *Handler) Show(c echo.Context) error {
	project, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return middleware.Render(c, http.StatusOK, DetailPage(project))
}

// --- Admin API ---

// List returns all projects.
func (h *Handler) List(c echo.Context) error {
	projects, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"projects": projects})
}

// Get returns a single project by ID.
func (h *Handler) Get(c echo.Context) error {
	project, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Create creates a new project.
func (h *Handler) Create(c echo.Context) error {
	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	project, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}

	h.recordAudit(c, audit.ActionProjectCreated, project)
	return c.JSON(http.StatusCreated, project)
}

// Update applies a partial update to a project.
func (h *Handler) Update(c echo.Context) error {
	var req UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	project, err := h.service.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}

	h.recordAudit(c, audit.ActionProjectUpdated, project)
	return c.JSON(http.StatusOK, project)
}

// Delete removes a project.
func (h *Handler) Delete(c echo.Context) error {
	id := c.Param("id")
	project, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	h.recordAudit(c, audit.ActionProjectDeleted, project)
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) recordAudit(c echo.Context, action string, project *Project) {
	event := &audit.Event{
		Action:    action,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		Details: map[string]any{
			"projectId": project.ID,
			"slug":      project.Slug,
			"title":     project.Title,
		},
	}
	if claims := auth.GetClaims(c); claims != nil {
		event.ActorID = &claims.UserID
		event.ActorEmail = &claims.Email
	}
	_ = h.audit.Log(c.Request().Context(), event)
}
