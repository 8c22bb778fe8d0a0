// Package audit records significant site events: login attempts, contact
// submissions, and content changes. Entries carry the client IP and user
// agent so the site owner can review who did what from where. Logging is
// fire-and-forget friendly -- an audit failure never blocks the operation
// that triggered it.
package audit

import "time"

// --- Action Constants ---
// Each action string follows the pattern "resource.verb" for consistent
// filtering and display grouping.

const (
	// ActionLoginSucceeded is logged on every successful login.
	ActionLoginSucceeded = "auth.login_succeeded"

	// ActionLoginFailed is logged on every rejected login attempt.
	ActionLoginFailed = "auth.login_failed"

	// ActionContactSubmitted is logged when the contact form is submitted.
	ActionContactSubmitted = "contact.submitted"

	// ActionPostCreated is logged when a blog post is created.
	ActionPostCreated = "post.created"

	// ActionPostUpdated is logged when a blog post is updated.
	ActionPostUpdated = "post.updated"

	// ActionPostDeleted is logged when a blog post is deleted.
	ActionPostDeleted = "post.deleted"

	// ActionProjectCreated is logged when a portfolio project is created.
	ActionProjectCreated = "project.created"

	// ActionProjectUpdated is logged when a portfolio project is updated.
	ActionProjectUpdated = "project.updated"

	// ActionProjectDeleted is logged when a portfolio project is deleted.
	ActionProjectDeleted = "project.deleted"
)

// Event is a single recorded action. ActorID and ActorEmail are nil for
// anonymous events (failed logins, contact submissions). Details holds
// action-specific metadata such as the attempted email or the post slug.
type Event struct {
	ID         int64          `json:"id"`
	Action     string         `json:"action"`
	ActorID    *string        `json:"actorId,omitempty"`
	ActorEmail *string        `json:"actorEmail,omitempty"`
	IPAddress  string         `json:"ipAddress"`
	UserAgent  string         `json:"userAgent,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}
