package blog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/calebmorris/devfolio/internal/templates/layouts"
)

// ListPage renders the public blog index.
func ListPage(posts []Post, page, total int) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section class="blog-index"><h1>Blog</h1>`)
		if len(posts) == 0 {
			b.WriteString(`<p class="empty">Nothing here yet. Check back soon.</p>`)
		}
		for _, post := range posts {
			b.WriteString(`<article class="post-card">`)
			b.WriteString(`<h2><a href="/blog/` + templ.EscapeString(post.Slug) + `">` + templ.EscapeString(post.Title) + `</a></h2>`)
			if post.PublishedAt != nil {
				b.WriteString(`<time datetime="` + post.PublishedAt.Format("2006-01-02") + `">` + post.PublishedAt.Format("January 2, 2006") + `</time>`)
			}
			if post.Excerpt != "" {
				b.WriteString(`<p>` + templ.EscapeString(post.Excerpt) + `</p>`)
			}
			writeTags(&b, post.Tags)
			b.WriteString(`</article>`)
		}
		writePager(&b, "/blog", page, total, postsPerPage)
		b.WriteString(`</section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layouts.Shell("Blog", "/blog", content)
}

// DetailPage renders a single published post. The post body is sanitized
// at write time, so it is emitted as-is.
func DetailPage(post *Post) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<article class="post">`)
		b.WriteString(`<h1>` + templ.EscapeString(post.Title) + `</h1>`)
		if post.PublishedAt != nil {
			b.WriteString(`<time datetime="` + post.PublishedAt.Format("2006-01-02") + `">` + post.PublishedAt.Format("January 2, 2006") + `</time>`)
		}
		writeTags(&b, post.Tags)
		b.WriteString(`<div class="post-body">` + post.ContentHTML + `</div>`)
		b.WriteString(`<p><a href="/blog">&larr; All posts</a></p>`)
		b.WriteString(`</article>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layouts.Shell(post.Title, "/blog", content)
}

func writeTags(b *strings.Builder, tags []string) {
	if len(tags) == 0 {
		return
	}
	b.WriteString(`<ul class="tags">`)
	for _, tag := range tags {
		b.WriteString(`<li>` + templ.EscapeString(tag) + `</li>`)
	}
	b.WriteString(`</ul>`)
}

func writePager(b *strings.Builder, base string, page, total, perPage int) {
	pages := (total + perPage - 1) / perPage
	if pages <= 1 {
		return
	}
	b.WriteString(`<nav class="pager">`)
	if page > 1 {
		b.WriteString(fmt.Sprintf(`<a href="%s?page=%d">Newer</a>`, base, page-1))
	}
	b.WriteString(fmt.Sprintf(`<span>Page %d of %d</span>`, page, pages))
	if page < pages {
		b.WriteString(fmt.Sprintf(`<a href="%s?page=%d">Older</a>`, base, page+1))
	}
	b.WriteString(`</nav>`)
}
