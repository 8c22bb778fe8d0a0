package portfolio

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/calebmorris/devfolio/internal/templates/layouts"
)

// ListPage renders the public portfolio index.
func ListPage(projects []Project) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section class="portfolio-index"><h1>Work</h1>`)
		if len(projects) == 0 {
			b.WriteString(`<p class="empty">Projects are on their way.</p>`)
		}
		b.WriteString(`<div class="project-grid">`)
		for _, p := range projects {
			writeProjectCard(&b, p)
		}
		b.WriteString(`</div></section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layouts.Shell("Work", "/portfolio", content)
}

// DetailPage renders a single project. DescriptionHTML is sanitized at
// write time, so it is emitted as-is.
func DetailPage(project *Project) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<article class="project">`)
		b.WriteString(`<h1>` + templ.EscapeString(project.Title) + `</h1>`)
		if project.Summary != "" {
			b.WriteString(`<p class="summary">` + templ.EscapeString(project.Summary) + `</p>`)
		}
		writeTechList(&b, project.Tech)
		b.WriteString(`<div class="project-body">` + project.DescriptionHTML + `</div>`)
		writeLinks(&b, project)
		b.WriteString(`<p><a href="/portfolio">&larr; All work</a></p>`)
		b.WriteString(`</article>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layouts.Shell(project.Title, "/portfolio", content)
}

// FeaturedSection renders the featured-project strip used on the landing
// page.
func FeaturedSection(projects []Project) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(projects) == 0 {
			return nil
		}
		var b strings.Builder
		b.WriteString(`<section class="featured"><h2>Selected work</h2><div class="project-grid">`)
		for _, p := range projects {
			writeProjectCard(&b, p)
		}
		b.WriteString(`</div><p><a href="/portfolio">See all work &rarr;</a></p></section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeProjectCard(b *strings.Builder, p Project) {
	b.WriteString(`<article class="project-card">`)
	b.WriteString(`<h3><a href="/portfolio/` + templ.EscapeString(p.Slug) + `">` + templ.EscapeString(p.Title) + `</a></h3>`)
	if p.Summary != "" {
		b.WriteString(`<p>` + templ.EscapeString(p.Summary) + `</p>`)
	}
	writeTechList(b, p.Tech)
	b.WriteString(`</article>`)
}

func writeTechList(b *strings.Builder, tech []string) {
	if len(tech) == 0 {
		return
	}
	b.WriteString(`<ul class="tech">`)
	for _, t := range tech {
		b.WriteString(`<li>` + templ.EscapeString(t) + `</li>`)
	}
	b.WriteString(`</ul>`)
}

func writeLinks(b *strings.Builder, p *Project) {
	if p.RepoURL == "" && p.LiveURL == "" {
		return
	}
	b.WriteString(`<p class="project-links">`)
	if p.LiveURL != "" {
		b.WriteString(`<a href="` + templ.EscapeString(p.LiveURL) + `" rel="noopener">Live site</a> `)
	}
	if p.RepoURL != "" {
		b.WriteString(`<a href="` + templ.EscapeString(p.RepoURL) + `" rel="noopener">Source</a>`)
	}
	b.WriteString(`</p>`)
}
