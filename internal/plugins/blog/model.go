// Package blog implements the site's blog: public listing and detail
// pages, and the admin CRUD used to write and publish posts. Post bodies
// are authored as HTML and sanitized before storage.
package blog

import "time"

// Post is a blog entry. Slug is derived from the title at creation and
// unique across all posts; it is the public URL segment. Unpublished
// posts are invisible to the public site.
type Post struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	ContentHTML string     `json:"contentHtml"`
	Tags        []string   `json:"tags"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreatePostRequest is the admin payload for creating a post.
type CreatePostRequest struct {
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	ContentHTML string   `json:"contentHtml"`
	Tags        []string `json:"tags"`
	Published   bool     `json:"published"`
}

// UpdatePostRequest is the admin payload for a partial update. Nil fields
// are left unchanged; flipping Published to true stamps PublishedAt.
type UpdatePostRequest struct {
	Title       *string   `json:"title"`
	Excerpt     *string   `json:"excerpt"`
	ContentHTML *string   `json:"contentHtml"`
	Tags        *[]string `json:"tags"`
	Published   *bool     `json:"published"`
}
