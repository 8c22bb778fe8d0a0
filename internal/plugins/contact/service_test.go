package contact

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/calebmorris/devfolio/internal/apperror"
)

// --- Mocks ---

// mockMessageRepo implements MessageRepository for testing.
type mockMessageRepo struct {
	createFn      func(ctx context.Context, msg *Message) error
	findByIDFn    func(ctx context.Context, id string) (*Message, error)
	listFn        func(ctx context.Context, limit, offset int) ([]Message, int, error)
	markReadFn    func(ctx context.Context, id string) error
	deleteFn      func(ctx context.Context, id string) error
	countUnreadFn func(ctx context.Context) (int, error)
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *Message) error {
	if m.createFn != nil {
		return m.createFn(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepo) FindByID(ctx context.Context, id string) (*Message, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("message not found")
}

func (m *mockMessageRepo) List(ctx context.Context, limit, offset int) ([]Message, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, id string) error {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, id)
	}
	return nil
}

func (m *mockMessageRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockMessageRepo) CountUnread(ctx context.Context) (int, error) {
	if m.countUnreadFn != nil {
		return m.countUnreadFn(ctx)
	}
	return 0, nil
}

// mockSender captures outbound mail for assertions.
type mockSender struct {
	enabled  bool
	sendErr  error
	sent     [][]string
	subjects []string
}

func (m *mockSender) Send(ctx context.Context, to []string, subject, body string) error {
	m.sent = append(m.sent, to)
	m.subjects = append(m.subjects, subject)
	return m.sendErr
}

func (m *mockSender) Enabled() bool { return m.enabled }

func validSubmit() SubmitRequest {
	return SubmitRequest{
		Name:    "Dana",
		Email:   "dana@example.com",
		Subject: "New site",
		Body:    "I need a marketing site with a small admin area.",
	}
}

// --- Submit Tests ---

func TestSubmit_PersistsAndNotifies(t *testing.T) {
	var stored *Message
	repo := &mockMessageRepo{
		createFn: func(ctx context.Context, msg *Message) error {
			stored = msg
			return nil
		},
	}
	mail := &mockSender{enabled: true}

	svc := NewService(repo, mail, "owner@example.com")
	msg, err := svc.Submit(context.Background(), validSubmit(), "203.0.113.9", "test-agent")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if stored == nil || stored.ID == "" {
		t.Fatal("expected message to be persisted with an ID")
	}
	if stored.IPAddress != "203.0.113.9" || stored.UserAgent != "test-agent" {
		t.Errorf("request metadata not stored: %+v", stored)
	}
	if msg.ID != stored.ID {
		t.Errorf("returned message differs from stored one")
	}

	// Two emails: owner notification, then submitter acknowledgement.
	if len(mail.sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(mail.sent))
	}
	if mail.sent[0][0] != "owner@example.com" {
		t.Errorf("first email should go to the owner, went to %v", mail.sent[0])
	}
	if mail.sent[1][0] != "dana@example.com" {
		t.Errorf("second email should go to the submitter, went to %v", mail.sent[1])
	}
}

func TestSubmit_MailFailureDoesNotFailSubmission(t *testing.T) {
	persisted := false
	repo := &mockMessageRepo{
		createFn: func(ctx context.Context, msg *Message) error {
			persisted = true
			return nil
		},
	}
	mail := &mockSender{enabled: true, sendErr: errors.New("relay down")}

	_, err := NewService(repo, mail, "owner@example.com").Submit(context.Background(), validSubmit(), "", "")
	if err != nil {
		t.Fatalf("expected submission to succeed despite mail failure, got %v", err)
	}
	if !persisted {
		t.Error("expected message to be persisted")
	}
}

func TestSubmit_NoMailWhenDisabled(t *testing.T) {
	mail := &mockSender{enabled: false}
	_, err := NewService(&mockMessageRepo{}, mail, "owner@example.com").Submit(context.Background(), validSubmit(), "", "")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if len(mail.sent) != 0 {
		t.Errorf("expected no emails with mail disabled, got %d", len(mail.sent))
	}
}

func TestSubmit_PersistFailureSendsNothing(t *testing.T) {
	repo := &mockMessageRepo{
		createFn: func(ctx context.Context, msg *Message) error {
			return apperror.NewInternal(errors.New("db down"))
		},
	}
	mail := &mockSender{enabled: true}

	_, err := NewService(repo, mail, "owner@example.com").Submit(context.Background(), validSubmit(), "", "")
	if err == nil {
		t.Fatal("expected error when persistence fails")
	}
	if len(mail.sent) != 0 {
		t.Errorf("no email may be sent when the message was not stored, got %d", len(mail.sent))
	}
}

func TestSubmit_Validation(t *testing.T) {
	svc := NewService(&mockMessageRepo{}, &mockSender{}, "owner@example.com")

	tests := []struct {
		name   string
		mutate func(*SubmitRequest)
	}{
		{"empty name", func(r *SubmitRequest) { r.Name = "  " }},
		{"bad email", func(r *SubmitRequest) { r.Email = "not-an-email" }},
		{"empty subject", func(r *SubmitRequest) { r.Subject = "" }},
		{"empty body", func(r *SubmitRequest) { r.Body = "   " }},
		{"body too long", func(r *SubmitRequest) { r.Body = strings.Repeat("x", maxBodyLength+1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSubmit()
			tt.mutate(&req)
			_, err := svc.Submit(context.Background(), req, "", "")
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) || appErr.Code != http.StatusUnprocessableEntity {
				t.Errorf("expected 422 validation error, got %v", err)
			}
		})
	}
}

// --- Inbox Tests ---

func TestMarkRead_ReturnsUpdatedMessage(t *testing.T) {
	repo := &mockMessageRepo{
		markReadFn: func(ctx context.Context, id string) error {
			return nil
		},
		findByIDFn: func(ctx context.Context, id string) (*Message, error) {
			return &Message{ID: id, IsRead: true}, nil
		},
	}

	msg, err := NewService(repo, &mockSender{}, "").MarkRead(context.Background(), "msg-1")
	if err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	if !msg.IsRead {
		t.Error("expected message to read back as read")
	}
}

func TestMarkRead_UnknownMessage(t *testing.T) {
	_, err := NewService(&mockMessageRepo{
		markReadFn: func(ctx context.Context, id string) error {
			return apperror.NewNotFound("message not found")
		},
	}, &mockSender{}, "").MarkRead(context.Background(), "nope")

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
