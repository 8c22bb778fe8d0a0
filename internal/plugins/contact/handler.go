package contact

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/calebmorris/devfolio/internal/middleware"
	"github.com/calebmorris/devfolio/internal/plugins/audit"
)

// Handler handles HTTP requests for the contact form and inbox.
type Handler struct {
	service Service
	audit   audit.Service
}

// NewHandler creates a new contact handler.
func NewHandler(service Service, auditSvc audit.Service) *Handler {
	return &Handler{service: service, audit: auditSvc}
}

// --- Public ---

// Form renders the contact page.
func (h *Handler) Form(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, Page(middleware.GetCSRFToken(c)))
}

// Submit accepts a contact form submission. JSON clients get a JSON
// response; plain form posts get the confirmation page.
func (h *Handler) Submit(c echo.Context) error {
	var req SubmitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	msg, err := h.service.Submit(c.Request().Context(), req, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return err
	}

	event := &audit.Event{
		Action:    audit.ActionContactSubmitted,
		IPAddress: msg.IPAddress,
		UserAgent: msg.UserAgent,
		Details: map[string]any{
			"messageId": msg.ID,
			"email":     msg.Email,
			"subject":   msg.Subject,
		},
	}
	_ = h.audit.Log(c.Request().Context(), event)

	if wantsJSON(c) {
		return c.JSON(http.StatusCreated, map[string]any{
			"success": true,
			"message": "Thanks for your message. I'll be in touch soon.",
		})
	}
	return middleware.Render(c, http.StatusOK, ThanksPage())
}

// --- Admin API ---

// List returns the paginated inbox, newest first.
func (h *Handler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	messages, total, err := h.service.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	unread, err := h.service.CountUnread(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"messages": messages,
		"total":    total,
		"unread":   unread,
		"page":     page,
	})
}

// MarkRead marks a message as read.
func (h *Handler) MarkRead(c echo.Context) error {
	msg, err := h.service.MarkRead(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msg)
}

// Delete removes a message.
func (h *Handler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func wantsJSON(c echo.Context) bool {
	if strings.Contains(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return true
	}
	return strings.Contains(c.Request().Header.Get("Accept"), echo.MIMEApplicationJSON)
}
