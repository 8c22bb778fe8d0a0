package admin

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/calebmorris/devfolio/internal/plugins/audit"
	"github.com/calebmorris/devfolio/internal/plugins/blog"
	"github.com/calebmorris/devfolio/internal/plugins/contact"
	"github.com/calebmorris/devfolio/internal/templates/layouts"
)

// DashboardStats are the headline numbers on the dashboard.
type DashboardStats struct {
	PublishedPosts int
	Projects       int
	UnreadMessages int
}

// DashboardPage renders the admin dashboard.
func DashboardPage(userName string, stats DashboardStats, events []audit.Event) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section class="dashboard"><h1>Dashboard</h1>`)
		b.WriteString(`<div class="stat-grid">`)
		writeStat(&b, "Published posts", stats.PublishedPosts, "/admin/posts")
		writeStat(&b, "Projects", stats.Projects, "/portfolio")
		writeStat(&b, "Unread messages", stats.UnreadMessages, "/admin/messages")
		b.WriteString(`</div>`)

		b.WriteString(`<h2>Recent activity</h2>`)
		if len(events) == 0 {
			b.WriteString(`<p class="empty">No activity recorded yet.</p>`)
		} else {
			b.WriteString(`<table class="activity"><thead><tr><th>When</th><th>Action</th><th>Actor</th><th>IP</th></tr></thead><tbody>`)
			for _, ev := range events {
				actor := "-"
				if ev.ActorEmail != nil {
					actor = *ev.ActorEmail
				}
				b.WriteString(`<tr>`)
				b.WriteString(`<td>` + ev.CreatedAt.Format(time.RFC822) + `</td>`)
				b.WriteString(`<td>` + templ.EscapeString(ev.Action) + `</td>`)
				b.WriteString(`<td>` + templ.EscapeString(actor) + `</td>`)
				b.WriteString(`<td>` + templ.EscapeString(ev.IPAddress) + `</td>`)
				b.WriteString(`</tr>`)
			}
			b.WriteString(`</tbody></table>`)
		}
		b.WriteString(`</section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layouts.AdminShell("Dashboard", "/admin/dashboard", userName, content)
}

// PostsPage renders the post management table.
func PostsPage(userName string, posts []blog.Post, page, total int) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section class="admin-posts"><h1>Posts</h1>`)
		if len(posts) == 0 {
			b.WriteString(`<p class="empty">No posts yet.</p>`)
		} else {
			b.WriteString(`<table><thead><tr><th>Title</th><th>Status</th><th>Published</th><th>Updated</th></tr></thead><tbody>`)
			for _, post := range posts {
				status := "Draft"
				publishedAt := "-"
				if post.Published {
					status = "Published"
					if post.PublishedAt != nil {
						publishedAt = post.PublishedAt.Format("2006-01-02")
					}
				}
				b.WriteString(`<tr data-post-id="` + templ.EscapeString(post.ID) + `">`)
				b.WriteString(`<td><a href="/blog/` + templ.EscapeString(post.Slug) + `">` + templ.EscapeString(post.Title) + `</a></td>`)
				b.WriteString(`<td>` + status + `</td>`)
				b.WriteString(`<td>` + publishedAt + `</td>`)
				b.WriteString(`<td>` + post.UpdatedAt.Format("2006-01-02") + `</td>`)
				b.WriteString(`</tr>`)
			}
			b.WriteString(`</tbody></table>`)
		}
		writeAdminPager(&b, "/admin/posts", page, total, 10)
		b.WriteString(`</section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layouts.AdminShell("Posts", "/admin/posts", userName, content)
}

// MessagesPage renders the contact inbox.
func MessagesPage(userName string, messages []contact.Message, page, total int) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section class="admin-messages"><h1>Messages</h1>`)
		if len(messages) == 0 {
			b.WriteString(`<p class="empty">The inbox is empty.</p>`)
		}
		for _, msg := range messages {
			cls := "message unread"
			if msg.IsRead {
				cls = "message"
			}
			b.WriteString(`<article class="` + cls + `" data-message-id="` + templ.EscapeString(msg.ID) + `">`)
			b.WriteString(`<header><strong>` + templ.EscapeString(msg.Subject) + `</strong>`)
			b.WriteString(` <span>from ` + templ.EscapeString(msg.Name) + ` &lt;` + templ.EscapeString(msg.Email) + `&gt;</span>`)
			b.WriteString(` <time>` + msg.CreatedAt.Format(time.RFC822) + `</time></header>`)
			if msg.ProjectType != "" || msg.Budget != "" {
				b.WriteString(`<p class="meta">` + templ.EscapeString(msg.ProjectType))
				if msg.Budget != "" {
					b.WriteString(` &middot; ` + templ.EscapeString(msg.Budget))
				}
				b.WriteString(`</p>`)
			}
			b.WriteString(`<p>` + templ.EscapeString(msg.Body) + `</p>`)
			b.WriteString(`</article>`)
		}
		writeAdminPager(&b, "/admin/messages", page, total, 25)
		b.WriteString(`</section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layouts.AdminShell("Messages", "/admin/messages", userName, content)
}

func writeStat(b *strings.Builder, label string, value int, href string) {
	b.WriteString(`<a class="stat" href="` + href + `">`)
	b.WriteString(fmt.Sprintf(`<strong>%d</strong>`, value))
	b.WriteString(`<span>` + templ.EscapeString(label) + `</span></a>`)
}

func writeAdminPager(b *strings.Builder, base string, page, total, perPage int) {
	pages := (total + perPage - 1) / perPage
	if pages <= 1 {
		return
	}
	b.WriteString(`<nav class="pager">`)
	if page > 1 {
		b.WriteString(fmt.Sprintf(`<a href="%s?page=%d">Previous</a>`, base, page-1))
	}
	b.WriteString(fmt.Sprintf(`<span>Page %d of %d</span>`, page, pages))
	if page < pages {
		b.WriteString(fmt.Sprintf(`<a href="%s?page=%d">Next</a>`, base, page+1))
	}
	b.WriteString(`</nav>`)
}
