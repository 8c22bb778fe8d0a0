package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/calebmorris/devfolio/internal/apperror"
)

// perPage is the number of events shown per page in the activity feed.
const perPage = 50

// Service handles business logic for the audit log. Log is designed to be
// fire-and-forget: errors are logged here and callers may ignore the
// returned error, since an audit failure should never block the primary
// operation.
type Service interface {
	Log(ctx context.Context, event *Event) error

	// RecentActivity returns a paginated feed, newest first. Returns the
	// events, the total count, and any error. Pages are 1-indexed.
	RecentActivity(ctx context.Context, page int) ([]Event, int, error)
}

// auditService implements Service.
type auditService struct {
	repo AuditRepository
}

// NewService creates a new audit service with the given repository.
func NewService(repo AuditRepository) Service {
	return &auditService{repo: repo}
}

// Log validates and persists an audit event.
func (s *auditService) Log(ctx context.Context, event *Event) error {
	if event.Action == "" {
		return apperror.NewBadRequest("action is required for audit event")
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		slog.Error("failed to write audit event",
			slog.String("action", event.Action),
			slog.Any("error", err),
		)
		return apperror.NewInternal(fmt.Errorf("writing audit event: %w", err))
	}

	return nil
}

// RecentActivity returns the paginated activity feed.
func (s *auditService) RecentActivity(ctx context.Context, page int) ([]Event, int, error) {
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * perPage
	events, total, err := s.repo.ListRecent(ctx, perPage, offset)
	if err != nil {
		return nil, 0, apperror.NewInternal(fmt.Errorf("listing activity: %w", err))
	}

	return events, total, nil
}
