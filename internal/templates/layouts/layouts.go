// Package layouts provides the HTML shells that wrap page content: the
// public site chrome (header, nav, footer) and the admin panel chrome.
// Components are hand-written templ.ComponentFunc values; the site's
// markup is deliberately plain and the interesting content lives in the
// per-plugin page components.
package layouts

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// navLink is one entry in the public header navigation.
type navLink struct {
	Href  string
	Label string
}

var publicNav = []navLink{
	{Href: "/", Label: "Home"},
	{Href: "/about", Label: "About"},
	{Href: "/portfolio", Label: "Portfolio"},
	{Href: "/blog", Label: "Blog"},
	{Href: "/contact", Label: "Contact"},
}

var adminNav = []navLink{
	{Href: "/admin/dashboard", Label: "Dashboard"},
	{Href: "/admin/posts", Label: "Posts"},
	{Href: "/admin/messages", Label: "Messages"},
}

// Shell wraps content in the public site chrome. active is the current
// request path, used to mark the matching nav link.
func Shell(title, active string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeHead(w, title); err != nil {
			return err
		}
		if err := writeNav(w, publicNav, active); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main class="container">`); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main><footer class="site-footer"><p>&copy; Caleb Morris &middot; freelance software development</p></footer></body></html>`)
		return err
	})
}

// AdminShell wraps content in the admin panel chrome. userName appears in
// the header next to the logout control.
func AdminShell(title, active, userName string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeHead(w, title); err != nil {
			return err
		}
		if err := writeNav(w, adminNav, active); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w,
			`<div class="admin-bar"><span>%s</span> <button type="button" data-action="logout">Log out</button></div><main class="container admin">`,
			templ.EscapeString(userName)); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func writeHead(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w,
		`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><link rel="stylesheet" href="/static/css/site.css"><script src="/static/js/site.js" defer></script></head><body>`,
		templ.EscapeString(title))
	return err
}

func writeNav(w io.Writer, links []navLink, active string) error {
	if _, err := io.WriteString(w, `<header class="site-header"><nav>`); err != nil {
		return err
	}
	for _, l := range links {
		class := ""
		if l.Href == active {
			class = ` class="active"`
		}
		if _, err := fmt.Fprintf(w, `<a href="%s"%s>%s</a>`,
			templ.EscapeString(l.Href), class, templ.EscapeString(l.Label)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</nav></header>`)
	return err
}
