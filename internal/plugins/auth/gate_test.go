package auth

import (
	"testing"
	"time"
)

func newTestGate(t *testing.T) (*Gate, string) {
	t.Helper()
	codec := NewTokenCodec(testSecret, time.Hour)
	raw, err := codec.Issue("user-1", "caleb@example.com", RoleAdmin)
	if err != nil {
		t.Fatalf("issuing test token: %v", err)
	}
	return NewGate(codec), raw
}

func TestGate_PublicPathsAlwaysAllowed(t *testing.T) {
	gate, valid := newTestGate(t)

	paths := []string{
		"/",
		"/about",
		"/portfolio",
		"/blog",
		"/contact",
		"/portfolio/some-project",
		"/blog/some-post",
		"/static/css/site.css",
		"/api/auth/login",
		"/healthz",
		"/favicon.ico",
		"/images/hero.webp",
	}

	// Public paths pass regardless of what the cookie holds.
	for _, token := range []string{"", "garbage", valid} {
		for _, path := range paths {
			if d := gate.Decide(path, token); d.Outcome != OutcomeAllow {
				t.Errorf("Decide(%q, token=%q): expected allow, got %+v", path, token, d)
			}
		}
	}
}

func TestGate_NonAdminPathsDefaultOpen(t *testing.T) {
	gate, _ := newTestGate(t)

	for _, path := range []string{"/pricing", "/some/new/page", "/administrator"} {
		if d := gate.Decide(path, ""); d.Outcome != OutcomeAllow {
			t.Errorf("Decide(%q): expected allow, got %+v", path, d)
		}
	}
}

func TestGate_LoginPage(t *testing.T) {
	gate, valid := newTestGate(t)

	// Unauthenticated and invalid-token visitors see the form.
	if d := gate.Decide("/admin/login", ""); d.Outcome != OutcomeAllow {
		t.Errorf("no token: expected allow, got %+v", d)
	}
	if d := gate.Decide("/admin/login", "garbage"); d.Outcome != OutcomeAllow {
		t.Errorf("invalid token: expected allow, got %+v", d)
	}

	// Authenticated users get bounced to the dashboard.
	d := gate.Decide("/admin/login", valid)
	if d.Outcome != OutcomeRedirect || d.Target != "/admin/dashboard" {
		t.Errorf("valid token: expected redirect to dashboard, got %+v", d)
	}
}

func TestGate_AdminRoot(t *testing.T) {
	gate, valid := newTestGate(t)

	d := gate.Decide("/admin", valid)
	if d.Outcome != OutcomeRedirect || d.Target != "/admin/dashboard" {
		t.Errorf("valid token: expected redirect to dashboard, got %+v", d)
	}

	d = gate.Decide("/admin", "")
	if d.Outcome != OutcomeRedirect || d.Target != "/admin/login" {
		t.Errorf("no token: expected redirect to login, got %+v", d)
	}

	d = gate.Decide("/admin", "garbage")
	if d.Outcome != OutcomeRedirect || d.Target != "/admin/login" {
		t.Errorf("invalid token: expected redirect to login, got %+v", d)
	}
}

func TestGate_ProtectedAdminPages(t *testing.T) {
	gate, valid := newTestGate(t)

	for _, path := range []string{"/admin/dashboard", "/admin/posts", "/admin/messages", "/admin/anything/nested"} {
		if d := gate.Decide(path, valid); d.Outcome != OutcomeAllow {
			t.Errorf("Decide(%q, valid): expected allow, got %+v", path, d)
		}

		// Missing token redirects without touching the cookie.
		d := gate.Decide(path, "")
		if d.Outcome != OutcomeRedirect || d.Target != "/admin/login" {
			t.Errorf("Decide(%q, none): expected redirect to login, got %+v", path, d)
		}

		// A present-but-invalid token additionally clears the cookie.
		d = gate.Decide(path, "garbage")
		if d.Outcome != OutcomeRedirectClearCookie || d.Target != "/admin/login" {
			t.Errorf("Decide(%q, invalid): expected clear-cookie redirect, got %+v", path, d)
		}
	}
}

func TestGate_ExpiredTokenTreatedAsInvalid(t *testing.T) {
	codec := NewTokenCodec(testSecret, -time.Minute)
	expired, err := codec.Issue("user-1", "caleb@example.com", RoleAdmin)
	if err != nil {
		t.Fatalf("issuing expired token: %v", err)
	}
	gate := NewGate(NewTokenCodec(testSecret, time.Hour))

	d := gate.Decide("/admin/dashboard", expired)
	if d.Outcome != OutcomeRedirectClearCookie || d.Target != "/admin/login" {
		t.Errorf("expected clear-cookie redirect for expired token, got %+v", d)
	}
}

func TestGate_AssetRule(t *testing.T) {
	gate, _ := newTestGate(t)

	// A dot in the last segment marks a static asset, wherever it lives.
	for _, path := range []string{"/robots.txt", "/fonts/inter.woff2", "/deep/path/app.js"} {
		if d := gate.Decide(path, ""); d.Outcome != OutcomeAllow {
			t.Errorf("Decide(%q): expected allow, got %+v", path, d)
		}
	}

	// Dots in earlier segments don't count.
	if d := gate.Decide("/admin/v1.2/settings", ""); d.Outcome != OutcomeRedirect {
		t.Errorf("expected redirect for dotted middle segment under /admin, got %+v", d)
	}
}
