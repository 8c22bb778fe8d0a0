package mailer

import (
	"strings"
	"testing"
	"time"
)

func TestLoginNotice(t *testing.T) {
	when := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	subject, body, err := LoginNotice("Caleb", "caleb@example.com", "203.0.113.9", "Mozilla/5.0", when)
	if err != nil {
		t.Fatalf("LoginNotice failed: %v", err)
	}
	if subject == "" {
		t.Error("expected non-empty subject")
	}
	for _, want := range []string{"caleb@example.com", "203.0.113.9", "Mozilla/5.0"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestContactNotice(t *testing.T) {
	subject, body, err := ContactNotice(ContactNoticeData{
		Name:    "Dana",
		Email:   "dana@example.com",
		Subject: "New site",
		Body:    "I need a site.",
		When:    "Sat, 14 Mar 2026 09:26:53 UTC",
		IP:      "203.0.113.9",
	})
	if err != nil {
		t.Fatalf("ContactNotice failed: %v", err)
	}
	if !strings.Contains(subject, "New site") {
		t.Errorf("subject should carry the enquiry subject, got %q", subject)
	}
	for _, want := range []string{"Dana", "dana@example.com", "I need a site."} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
	// Blank optional fields render as placeholders, not empty template holes.
	if strings.Contains(body, "{{") {
		t.Errorf("unrendered template markers in body:\n%s", body)
	}
}

func TestContactAck(t *testing.T) {
	_, body, err := ContactAck("Dana")
	if err != nil {
		t.Fatalf("ContactAck failed: %v", err)
	}
	if !strings.Contains(body, "Dana") {
		t.Errorf("body should greet the submitter:\n%s", body)
	}
}
