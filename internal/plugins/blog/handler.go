package blog

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/calebmorris/devfolio/internal/middleware"
	"github.com/calebmorris/devfolio/internal/plugins/audit"
	"github.com/calebmorris/devfolio/internal/plugins/auth"
)

// Handler handles HTTP requests for blog posts.
type Handler struct {
	service Service
	audit   audit.Service
}

// NewHandler creates a new blog handler.
func NewHandler(service Service, auditSvc audit.Service) *Handler {
	return &Handler{service: service, audit: auditSvc}
}

// --- Public pages ---

// Index renders the public blog listing.
func (h *Handler) Index(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	posts, total, err := h.service.ListPublished(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return middleware.Render(c, http.StatusOK, ListPage(posts, page, total))
}

// Show renders a single published post by slug.
func (h *Handler) Show(c echo.Context) error {
	post, err := h.service.GetPublished(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return middleware.Render(c, http.StatusOK, DetailPage(post))
}

// --- Admin API ---

// List returns all posts, drafts included.
func (h *Handler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	posts, total, err := h.service.ListAll(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"posts": posts,
		"total": total,
		"page":  page,
	})
}

// Get returns a single post by ID.
func (h *Handler) Get(c echo.Context) error {
	post, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Create creates a new post.
func (h *Handler) Create(c echo.Context) error {
	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	post, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}

	h.recordAudit(c, audit.ActionPostCreated, post)
	return c.JSON(http.StatusCreated, post)
}

// Update applies a partial update to a post.
func (h *Handler) Update(c echo.Context) error {
	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	post, err := h.service.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}

	h.recordAudit(c, audit.ActionPostUpdated, post)
	return c.JSON(http.StatusOK, post)
}

// Delete removes a post.
func (h *Handler) Delete(c echo.Context) error {
	id := c.Param("id")
	post, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	h.recordAudit(c, audit.ActionPostDeleted, post)
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) recordAudit(c echo.Context, action string, post *Post) {
	event := &audit.Event{
		Action:    action,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		Details: map[string]any{
			"postId": post.ID,
			"slug":   post.Slug,
			"title":  post.Title,
		},
	}
	if claims := auth.GetClaims(c); claims != nil {
		event.ActorID = &claims.UserID
		event.ActorEmail = &claims.Email
	}
	_ = h.audit.Log(c.Request().Context(), event)
}
