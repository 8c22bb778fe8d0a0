// Package contact implements the contact form intake: the public page
// and submit endpoint, email notifications, and the admin inbox.
package contact

import "time"

// Message is a stored contact form submission. The submission is
// persisted before any email is attempted, so a broken SMTP setup never
// loses an enquiry.
type Message struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	ProjectType string    `json:"projectType"`
	Budget      string    `json:"budget"`
	IPAddress   string    `json:"ipAddress"`
	UserAgent   string    `json:"userAgent"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SubmitRequest is the public contact form payload. ProjectType and
// Budget are optional free-form hints.
type SubmitRequest struct {
	Name        string `json:"name" form:"name"`
	Email       string `json:"email" form:"email"`
	Subject     string `json:"subject" form:"subject"`
	Body        string `json:"body" form:"body"`
	ProjectType string `json:"projectType" form:"project_type"`
	Budget      string `json:"budget" form:"budget"`
}
