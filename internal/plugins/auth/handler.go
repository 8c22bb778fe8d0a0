package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/calebmorris/devfolio/internal/apperror"
	"github.com/calebmorris/devfolio/internal/mailer"
	"github.com/calebmorris/devfolio/internal/middleware"
	"github.com/calebmorris/devfolio/internal/plugins/audit"
)

// minPasswordLength is the minimum accepted login password length.
// Shorter submissions are rejected before any credential check runs.
const minPasswordLength = 8

// emailRe is a shape check, not full RFC validation: something@something.tld.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Handler handles HTTP requests for authentication. Handlers are thin:
// they bind the request, call the service, and shape the response. The
// audit record and the owner notification email are side channels with
// their own error boundaries -- neither can fail a login.
type Handler struct {
	service  AuthService
	codec    *TokenCodec
	audit    audit.Service
	mail     mailer.Sender
	notifyTo string
}

// NewHandler creates a new auth handler.
func NewHandler(service AuthService, codec *TokenCodec, auditSvc audit.Service, mail mailer.Sender, notifyTo string) *Handler {
	return &Handler{
		service:  service,
		codec:    codec,
		audit:    auditSvc,
		mail:     mail,
		notifyTo: notifyTo,
	}
}

// loginResponse is the JSON body for every /api/auth/login outcome.
type loginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    *PublicUser `json:"user,omitempty"`
}

// LoginForm renders the admin login page (GET /admin/login). The gate has
// already redirected authenticated users to the dashboard before this runs.
func (h *Handler) LoginForm(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, LoginPage(middleware.GetCSRFToken(c)))
}

// Login processes a credential submission (POST /api/auth/login).
//
// Responses: 400 for a malformed payload, 401 with one fixed generic body
// for every authentication failure, 200 with the public profile and the
// session cookie on success. Unexpected errors surface as 500 through the
// app error handler; the client never sees the cause.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{Success: false, Message: "invalid request"})
	}

	if msg := validateLoginRequest(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, loginResponse{Success: false, Message: msg})
	}

	user, err := h.service.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if apperror.SafeCode(err) == http.StatusUnauthorized {
			h.recordLoginAudit(c, audit.ActionLoginFailed, nil, req.Email)
			// One fixed body for unknown email, inactive account, and wrong
			// password alike.
			return c.JSON(http.StatusUnauthorized, loginResponse{Success: false, Message: genericCredentialsMessage})
		}
		return err
	}

	token, err := h.codec.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("issuing session token: %w", err))
	}

	SetAuthCookie(c, token, int(h.codec.TTL().Seconds()))

	h.recordLoginAudit(c, audit.ActionLoginSucceeded, user, user.Email)
	h.notifyLogin(c, user)

	return c.JSON(http.StatusOK, loginResponse{Success: true, Message: "logged in", User: user})
}

// Me returns the current user's profile (GET /api/auth/me), or 401 when
// the cookie is missing, invalid, or belongs to a deactivated account.
func (h *Handler) Me(c echo.Context) error {
	claims, err := h.codec.Verify(TokenFromCookie(c))
	if err != nil {
		return apperror.NewUnauthorized("authentication required")
	}

	user, err := h.service.Profile(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// Logout clears the session cookie (POST /api/auth/logout). Tokens are
// stateless, so there is nothing server-side to revoke; the token simply
// ages out at its exp.
func (h *Handler) Logout(c echo.Context) error {
	ClearAuthCookie(c)
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "logged out",
	})
}

// --- Side channels ---

// recordLoginAudit writes a login audit event, fire-and-forget.
func (h *Handler) recordLoginAudit(c echo.Context, action string, user *PublicUser, email string) {
	event := &audit.Event{
		Action:    action,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
	if user != nil {
		event.ActorID = &user.ID
		event.ActorEmail = &user.Email
	} else {
		event.Details = map[string]any{"email": email}
	}

	_ = h.audit.Log(c.Request().Context(), event)
}

// notifyLogin emails the site owner about a successful login. Best-effort:
// a dead SMTP relay must not fail the login, the cookie is already set.
func (h *Handler) notifyLogin(c echo.Context, user *PublicUser) {
	if h.notifyTo == "" || !h.mail.Enabled() {
		return
	}

	subject, body, err := mailer.LoginNotice(user.Name, user.Email, c.RealIP(), c.Request().UserAgent(), time.Now())
	if err == nil {
		err = h.mail.Send(c.Request().Context(), []string{h.notifyTo}, subject, body)
	}
	if err != nil {
		slog.Warn("failed to send login notification",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}
}

// validateLoginRequest checks the submitted payload's shape. Returns an
// error message or empty string. Shape failures never reach the
// authenticator.
func validateLoginRequest(req *LoginRequest) string {
	if req.Email == "" {
		return "email is required"
	}
	if !emailRe.MatchString(req.Email) {
		return "email address is not valid"
	}
	if req.Password == "" {
		return "password is required"
	}
	if len(req.Password) < minPasswordLength {
		return fmt.Sprintf("password must be at least %d characters", minPasswordLength)
	}
	return ""
}
