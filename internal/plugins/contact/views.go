package contact

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/calebmorris/devfolio/internal/templates/layouts"
)

// Page renders the public contact form.
func Page(csrfToken string) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section class="contact"><h1>Get in touch</h1>`)
		b.WriteString(`<p>Tell me about your project and I'll get back to you within a couple of days.</p>`)
		b.WriteString(`<form method="post" action="/api/contact" class="contact-form">`)
		b.WriteString(`<input type="hidden" name="csrf_token" value="` + templ.EscapeString(csrfToken) + `">`)
		b.WriteString(`<label>Name<input type="text" name="name" required maxlength="100"></label>`)
		b.WriteString(`<label>Email<input type="email" name="email" required></label>`)
		b.WriteString(`<label>Subject<input type="text" name="subject" required maxlength="200"></label>`)
		b.WriteString(`<label>Project type<select name="project_type">`)
		for _, opt := range []string{"", "Website", "Web application", "API / backend", "Consulting", "Other"} {
			b.WriteString(`<option>` + templ.EscapeString(opt) + `</option>`)
		}
		b.WriteString(`</select></label>`)
		b.WriteString(`<label>Budget<input type="text" name="budget" placeholder="Optional"></label>`)
		b.WriteString(`<label>Message<textarea name="body" required rows="8" maxlength="5000"></textarea></label>`)
		b.WriteString(`<button type="submit">Send message</button>`)
		b.WriteString(`</form></section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layouts.Shell("Contact", "/contact", content)
}

// ThanksPage renders the post-submit confirmation for plain form posts.
func ThanksPage() templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="contact"><h1>Message sent</h1>`+
			`<p>Thanks for reaching out. I'll reply as soon as I can.</p>`+
			`<p><a href="/">Back to the front page</a></p></section>`)
		return err
	})
	return layouts.Shell("Message sent", "/contact", content)
}
