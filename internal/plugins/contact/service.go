package contact

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/calebmorris/devfolio/internal/apperror"
	"github.com/calebmorris/devfolio/internal/mailer"
)

const (
	maxNameLength    = 100
	maxSubjectLength = 200
	maxBodyLength    = 5000
	messagesPerPage  = 25
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service handles contact form business logic.
type Service interface {
	// Submit validates and persists a contact message, then sends the
	// owner notification and the submitter acknowledgement. Both emails
	// are best-effort: a failed send is logged and does not fail the
	// submission.
	Submit(ctx context.Context, req SubmitRequest, ip, userAgent string) (*Message, error)
	List(ctx context.Context, page int) ([]Message, int, error)
	MarkRead(ctx context.Context, id string) (*Message, error)
	Delete(ctx context.Context, id string) error
	CountUnread(ctx context.Context) (int, error)
}

type contactService struct {
	repo     MessageRepository
	mail     mailer.Sender
	notifyTo string
}

// NewService creates a contact service. notifyTo is the address that
// receives new-enquiry notifications.
func NewService(repo MessageRepository, mail mailer.Sender, notifyTo string) Service {
	return &contactService{repo: repo, mail: mail, notifyTo: notifyTo}
}

func (s *contactService) Submit(ctx context.Context, req SubmitRequest, ip, userAgent string) (*Message, error) {
	msg := &Message{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Subject:     strings.TrimSpace(req.Subject),
		Body:        strings.TrimSpace(req.Body),
		ProjectType: strings.TrimSpace(req.ProjectType),
		Budget:      strings.TrimSpace(req.Budget),
		IPAddress:   ip,
		UserAgent:   userAgent,
		CreatedAt:   time.Now(),
	}
	if err := validateMessage(msg); err != nil {
		return nil, err
	}

	// Persist first. Email problems must never lose an enquiry.
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.sendNotifications(ctx, msg)
	return msg, nil
}

func (s *contactService) List(ctx context.Context, page int) ([]Message, int, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.List(ctx, messagesPerPage, (page-1)*messagesPerPage)
}

func (s *contactService) MarkRead(ctx context.Context, id string) (*Message, error) {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *contactService) CountUnread(ctx context.Context) (int, error) {
	return s.repo.CountUnread(ctx)
}

func (s *contactService) sendNotifications(ctx context.Context, msg *Message) {
	if !s.mail.Enabled() {
		return
	}

	if s.notifyTo != "" {
		subject, body, err := mailer.ContactNotice(mailer.ContactNoticeData{
			Name:        msg.Name,
			Email:       msg.Email,
			Subject:     msg.Subject,
			ProjectType: msg.ProjectType,
			Budget:      msg.Budget,
			Body:        msg.Body,
			When:        msg.CreatedAt.UTC().Format(time.RFC1123),
			IP:          msg.IPAddress,
		})
		if err == nil {
			err = s.mail.Send(ctx, []string{s.notifyTo}, subject, body)
		}
		if err != nil {
			slog.Warn("failed to send contact notification",
				slog.String("messageId", msg.ID),
				slog.Any("error", err),
			)
		}
	}

	subject, body, err := mailer.ContactAck(msg.Name)
	if err == nil {
		err = s.mail.Send(ctx, []string{msg.Email}, subject, body)
	}
	if err != nil {
		slog.Warn("failed to send contact acknowledgement",
			slog.String("messageId", msg.ID),
			slog.Any("error", err),
		)
	}
}

func validateMessage(msg *Message) error {
	if msg.Name == "" {
		return apperror.NewValidation("name is required")
	}
	if len(msg.Name) > maxNameLength {
		return apperror.NewValidation(fmt.Sprintf("name must be at most %d characters", maxNameLength))
	}
	if msg.Email == "" || !emailRe.MatchString(msg.Email) {
		return apperror.NewValidation("a valid email address is required")
	}
	if msg.Subject == "" {
		return apperror.NewValidation("subject is required")
	}
	if len(msg.Subject) > maxSubjectLength {
		return apperror.NewValidation(fmt.Sprintf("subject must be at most %d characters", maxSubjectLength))
	}
	if msg.Body == "" {
		return apperror.NewValidation("message is required")
	}
	if len(msg.Body) > maxBodyLength {
		return apperror.NewValidation(fmt.Sprintf("message must be at most %d characters", maxBodyLength))
	}
	return nil
}
