package auth

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// LoginPage renders the standalone admin login form. It deliberately uses
// none of the site chrome: no nav, nothing to discover from here.
// The inline script posts the form as JSON to /api/auth/login and follows
// up with a navigation to the dashboard on success.
func LoginPage(csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>Sign in</title><link rel="stylesheet" href="/static/css/site.css"><script src="/static/js/login.js" defer></script></head><body class="login">`+
				`<main class="login-card"><h1>Admin</h1>`+
				`<form id="login-form" method="post" action="/api/auth/login">`+
				`<input type="hidden" name="csrf_token" value="%s">`+
				`<label>Email <input type="email" name="email" autocomplete="username" required></label>`+
				`<label>Password <input type="password" name="password" autocomplete="current-password" required minlength="8"></label>`+
				`<p class="form-error" id="login-error" hidden></p>`+
				`<button type="submit">Sign in</button>`+
				`</form></main></body></html>`,
			templ.EscapeString(csrfToken))
		return err
	})
}
