package mailer

import (
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Notification bodies are plain text rendered with text/template. Each
// builder returns (subject, body) ready for Send.

var loginNoticeTmpl = template.Must(template.New("login-notice").Parse(
	`New login to the admin panel.

User:       {{.Name}} <{{.Email}}>
Time:       {{.When}}
IP address: {{.IP}}
User agent: {{.UserAgent}}

If this wasn't you, rotate JWT_SECRET and change the account password.
`))

var contactNoticeTmpl = template.Must(template.New("contact-notice").Parse(
	`New contact message from {{.Name}} <{{.Email}}>.

Subject:      {{.Subject}}
Project type: {{.ProjectType}}
Budget:       {{.Budget}}
Received:     {{.When}}
IP address:   {{.IP}}

{{.Body}}
`))

var contactAckTmpl = template.Must(template.New("contact-ack").Parse(
	`Hi {{.Name}},

Thanks for getting in touch. I've received your message and will get back
to you within one or two business days.

This is an automated acknowledgement; replies to this address are not read.
`))

// LoginNoticeData feeds the login notification template.
type LoginNoticeData struct {
	Name      string
	Email     string
	When      string
	IP        string
	UserAgent string
}

// LoginNotice renders the email sent to the site owner after each
// successful admin login.
func LoginNotice(name, email, ip, userAgent string, when time.Time) (subject, body string, err error) {
	data := LoginNoticeData{
		Name:      name,
		Email:     email,
		When:      when.UTC().Format(time.RFC1123),
		IP:        ip,
		UserAgent: userAgent,
	}
	body, err = render(loginNoticeTmpl, data)
	return fmt.Sprintf("Admin login: %s", email), body, err
}

// ContactNoticeData feeds the contact notification template.
type ContactNoticeData struct {
	Name        string
	Email       string
	Subject     string
	ProjectType string
	Budget      string
	Body        string
	When        string
	IP          string
}

// ContactNotice renders the email sent to the site owner when the contact
// form is submitted.
func ContactNotice(data ContactNoticeData) (subject, body string, err error) {
	if data.ProjectType == "" {
		data.ProjectType = "-"
	}
	if data.Budget == "" {
		data.Budget = "-"
	}
	body, err = render(contactNoticeTmpl, data)
	return fmt.Sprintf("Contact form: %s", data.Subject), body, err
}

// ContactAck renders the acknowledgement sent back to the submitter.
func ContactAck(name string) (subject, body string, err error) {
	body, err = render(contactAckTmpl, struct{ Name string }{Name: name})
	return "Thanks for your message", body, err
}

func render(t *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", t.Name(), err)
	}
	return sb.String(), nil
}
