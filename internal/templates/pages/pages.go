// Package pages holds the site-generic page components: the landing page,
// the about page, and the error page. Feature pages (blog, portfolio,
// contact, admin) live next to their handlers in the plugin packages.
package pages

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/calebmorris/devfolio/internal/templates/layouts"
)

// Landing renders the home page. featured is the selected-work strip and
// may render nothing when no projects are flagged.
func Landing(featured templ.Component) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="hero">`+
			`<h1>Software, built to last.</h1>`+
			`<p>I'm Caleb, a freelance developer specializing in backend services, data plumbing, and the boring infrastructure that keeps products running.</p>`+
			`<p><a class="button" href="/contact">Start a project</a> <a class="button secondary" href="/portfolio">See my work</a></p>`+
			`</section>`)
		if err != nil {
			return err
		}
		if featured != nil {
			return featured.Render(ctx, w)
		}
		return nil
	})
	return layouts.Shell("Caleb Morris, Freelance Developer", "/", body)
}

// About renders the about page.
func About() templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<article class="prose">`+
			`<h1>About</h1>`+
			`<p>Fifteen years of shipping software for startups and small teams. I work in Go, SQL, and whatever your stack already is. Remote, contract, fixed-scope or retainer.</p>`+
			`<p>When I'm not writing code I'm writing about it. See the <a href="/blog">blog</a>.</p>`+
			`</article>`)
		return err
	})
	return layouts.Shell("About | Caleb Morris", "/about", body)
}

// ErrorPage renders a friendly error page for the given status code.
func ErrorPage(code int, message string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<section class="error-page"><h1>%d %s</h1><p>%s</p><p><a href="/">Back to the home page</a></p></section>`,
			code,
			templ.EscapeString(http.StatusText(code)),
			templ.EscapeString(message))
		return err
	})
	return layouts.Shell(fmt.Sprintf("%d | Caleb Morris", code), "", body)
}
