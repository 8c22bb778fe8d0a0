package auth

import "strings"

// Route constants used by the gate and the login handler.
const (
	adminPrefix   = "/admin"
	loginPath     = "/admin/login"
	dashboardPath = "/admin/dashboard"
)

// Outcome is the gate's verdict for a request.
type Outcome int

const (
	// OutcomeAllow lets the request proceed unchanged.
	OutcomeAllow Outcome = iota

	// OutcomeRedirect responds with a redirect to Decision.Target.
	OutcomeRedirect

	// OutcomeRedirectClearCookie redirects and removes the session cookie,
	// so later requests don't keep presenting a token that already failed.
	OutcomeRedirectClearCookie
)

// Decision is the gate's output for a single request. Target is the
// redirect location and is empty for OutcomeAllow.
type Decision struct {
	Outcome Outcome
	Target  string
}

// skipPrefixes are excluded from gate evaluation entirely: static assets,
// the JSON API (which authenticates in-handler via the token codec), and
// the health check.
var skipPrefixes = []string{
	"/static/",
	"/api/",
	"/healthz",
}

// publicPages are exact paths reachable without authentication.
var publicPages = map[string]bool{
	"/":          true,
	"/about":     true,
	"/portfolio": true,
	"/blog":      true,
	"/contact":   true,
}

// publicSections are prefixes whose whole subtree is public (detail pages).
var publicSections = []string{
	"/portfolio/",
	"/blog/",
}

// Gate decides, per inbound request, whether it may proceed and where to
// redirect otherwise. It performs no I/O: the only inputs are the request
// path and the raw cookie value, and token verification is pure
// computation inside the codec. It always produces a Decision -- token
// parse failures of any kind degrade to "invalid" and never escape.
type Gate struct {
	codec *TokenCodec
}

// NewGate creates a gate verifying tokens with the given codec.
func NewGate(codec *TokenCodec) *Gate {
	return &Gate{codec: codec}
}

// Decide maps (path, raw cookie token) to exactly one Decision.
//
// Public paths and anything outside /admin pass through untouched. The
// login page redirects already-authenticated users to the dashboard. The
// admin root routes to the dashboard or the login page depending on token
// validity. Every other admin path requires a valid token; a present but
// invalid token additionally clears the cookie on the way out.
func (g *Gate) Decide(path, rawToken string) Decision {
	if isPublicPath(path) {
		return Decision{Outcome: OutcomeAllow}
	}

	// Default-open: any non-admin route not covered above proceeds.
	if !strings.HasPrefix(path, adminPrefix) {
		return Decision{Outcome: OutcomeAllow}
	}

	switch path {
	case loginPath:
		// An authenticated user has no business re-seeing the login form.
		if g.tokenValid(rawToken) {
			return Decision{Outcome: OutcomeRedirect, Target: dashboardPath}
		}
		return Decision{Outcome: OutcomeAllow}

	case adminPrefix:
		if g.tokenValid(rawToken) {
			return Decision{Outcome: OutcomeRedirect, Target: dashboardPath}
		}
		return Decision{Outcome: OutcomeRedirect, Target: loginPath}
	}

	// Any other /admin/... sub-path. Here -- and only here -- a missing
	// token and an invalid token diverge: an invalid-but-present token
	// gets its cookie cleared.
	if rawToken == "" {
		return Decision{Outcome: OutcomeRedirect, Target: loginPath}
	}
	if !g.tokenValid(rawToken) {
		return Decision{Outcome: OutcomeRedirectClearCookie, Target: loginPath}
	}
	return Decision{Outcome: OutcomeAllow}
}

// tokenValid reports whether raw verifies as a well-formed, unexpired,
// correctly signed session token.
func (g *Gate) tokenValid(raw string) bool {
	if raw == "" {
		return false
	}
	_, err := g.codec.Verify(raw)
	return err == nil
}

// isPublicPath reports whether the path is reachable without any cookie
// inspection: excluded framework prefixes, known public pages, public
// section subtrees, and anything that looks like a static asset (a dot in
// the last path segment).
func isPublicPath(path string) bool {
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	if publicPages[path] {
		return true
	}
	for _, prefix := range publicSections {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	if last := path[strings.LastIndexByte(path, '/')+1:]; strings.Contains(last, ".") {
		return true
	}
	return false
}
