// Package admin serves the authenticated admin pages: the dashboard and
// the management views for posts and messages. Requests reach these
// handlers only after the auth gate has passed them, so a nil-claims
// request here means a middleware wiring bug, not a user error.
package admin

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/calebmorris/devfolio/internal/apperror"
	"github.com/calebmorris/devfolio/internal/middleware"
	"github.com/calebmorris/devfolio/internal/plugins/audit"
	"github.com/calebmorris/devfolio/internal/plugins/auth"
	"github.com/calebmorris/devfolio/internal/plugins/blog"
	"github.com/calebmorris/devfolio/internal/plugins/contact"
	"github.com/calebmorris/devfolio/internal/plugins/portfolio"
)

// recentActivityShown caps the activity feed on the dashboard.
const recentActivityShown = 10

// Handler renders the admin pages.
type Handler struct {
	blog      blog.Service
	portfolio portfolio.Service
	contact   contact.Service
	audit     audit.Service
}

// NewHandler creates a new admin handler.
func NewHandler(blogSvc blog.Service, portfolioSvc portfolio.Service, contactSvc contact.Service, auditSvc audit.Service) *Handler {
	return &Handler{blog: blogSvc, portfolio: portfolioSvc, contact: contactSvc, audit: auditSvc}
}

// Dashboard renders the admin landing view with site counts and the
// latest activity.
func (h *Handler) Dashboard(c echo.Context) error {
	claims := auth.GetClaims(c)
	if claims == nil {
		return apperror.NewUnauthorized("authentication required")
	}
	ctx := c.Request().Context()

	published, err := h.blog.CountPublished(ctx)
	if err != nil {
		return err
	}
	projects, err := h.portfolio.Count(ctx)
	if err != nil {
		return err
	}
	unread, err := h.contact.CountUnread(ctx)
	if err != nil {
		return err
	}
	events, _, err := h.audit.RecentActivity(ctx, 1)
	if err != nil {
		return err
	}
	if len(events) > recentActivityShown {
		events = events[:recentActivityShown]
	}

	stats := DashboardStats{
		PublishedPosts: published,
		Projects:       projects,
		UnreadMessages: unread,
	}
	return middleware.Render(c, http.StatusOK, DashboardPage(claims.Email, stats, events))
}

// Posts renders the post management view, drafts included.
func (h *Handler) Posts(c echo.Context) error {
	claims := auth.GetClaims(c)
	if claims == nil {
		return apperror.NewUnauthorized("authentication required")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	posts, total, err := h.blog.ListAll(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return middleware.Render(c, http.StatusOK, PostsPage(claims.Email, posts, page, total))
}

// Messages renders the contact inbox view.
func (h *Handler) Messages(c echo.Context) error {
	claims := auth.GetClaims(c)
	if claims == nil {
		return apperror.NewUnauthorized("authentication required")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	messages, total, err := h.contact.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return middleware.Render(c, http.StatusOK, MessagesPage(claims.Email, messages, page, total))
}
