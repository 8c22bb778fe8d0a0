package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "auth-token"

// claimsContextKey is the Echo context key for verified session claims.
// Other plugins read it via GetClaims.
const claimsContextKey = "auth_claims"

// Middleware returns the request gate as Echo middleware. It runs before
// routing-sensitive handlers on every page request and translates the
// gate's Decision into HTTP: pass-through, 302 redirect, or 302 redirect
// with the stale cookie cleared.
//
// When the gate allows an admin path with a valid token, the verified
// claims are stored in context for downstream handlers.
func (g *Gate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			raw := TokenFromCookie(c)

			switch d := g.Decide(path, raw); d.Outcome {
			case OutcomeRedirect:
				return c.Redirect(http.StatusFound, d.Target)
			case OutcomeRedirectClearCookie:
				ClearAuthCookie(c)
				return c.Redirect(http.StatusFound, d.Target)
			}

			if raw != "" {
				if claims, err := g.codec.Verify(raw); err == nil {
					c.Set(claimsContextKey, claims)
				}
			}

			return next(c)
		}
	}
}

// RequireAPIRole returns middleware for JSON API routes, which the gate
// skips entirely. It verifies the session cookie with the same token codec
// and enforces a minimum role. API clients get a 401/403 JSON response,
// never a redirect.
func RequireAPIRole(codec *TokenCodec, min Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := codec.Verify(TokenFromCookie(c))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error":   "unauthorized",
					"message": "authentication required",
				})
			}
			if !claims.Role.AtLeast(min) {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error":   "forbidden",
					"message": "insufficient role",
				})
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// GetClaims retrieves the verified session claims from the Echo context.
// Returns nil when the request is unauthenticated.
func GetClaims(c echo.Context) *SessionClaims {
	claims, ok := c.Get(claimsContextKey).(*SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

// --- Cookie helpers ---

// TokenFromCookie reads the raw session token from the request cookie jar.
// Returns "" when the cookie is absent or empty.
func TokenFromCookie(c echo.Context) string {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// SetAuthCookie sets the session cookie: HttpOnly, SameSite=Lax, Secure
// behind TLS or a TLS-terminating proxy, valid site-wide for maxAge.
func SetAuthCookie(c echo.Context, token string, maxAge int) {
	req := c.Request()
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// ClearAuthCookie removes the session cookie by setting MaxAge to -1.
func ClearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
