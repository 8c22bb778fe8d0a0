package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// AuditRepository defines the data access contract for the audit log.
type AuditRepository interface {
	Insert(ctx context.Context, event *Event) error
	ListRecent(ctx context.Context, limit, offset int) ([]Event, int, error)
}

// auditRepository implements AuditRepository against the audit_log table.
type auditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository backed by the given DB pool.
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &auditRepository{db: db}
}

// Insert writes a single audit row. Details are stored as a JSON column.
func (r *auditRepository) Insert(ctx context.Context, event *Event) error {
	var details []byte
	if len(event.Details) > 0 {
		var err error
		details, err = json.Marshal(event.Details)
		if err != nil {
			return fmt.Errorf("marshaling event details: %w", err)
		}
	}

	query := `INSERT INTO audit_log (action, actor_id, actor_email, ip_address, user_agent, details)
	          VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		event.Action,
		event.ActorID,
		event.ActorEmail,
		event.IPAddress,
		event.UserAgent,
		nullableJSON(details),
	)
	if err != nil {
		return fmt.Errorf("inserting audit event: %w", err)
	}

	return nil
}

// ListRecent returns a page of events, newest first, plus the total count.
func (r *auditRepository) ListRecent(ctx context.Context, limit, offset int) ([]Event, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting audit events: %w", err)
	}

	query := `SELECT id, action, actor_id, actor_email, ip_address, user_agent, details, created_at
	          FROM audit_log ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listing audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var details sql.NullString
		var userAgent sql.NullString
		if err := rows.Scan(
			&e.ID, &e.Action, &e.ActorID, &e.ActorEmail,
			&e.IPAddress, &userAgent, &details, &e.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scanning audit row: %w", err)
		}
		e.UserAgent = userAgent.String
		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &e.Details); err != nil {
				return nil, 0, fmt.Errorf("unmarshaling event details: %w", err)
			}
		}
		events = append(events, e)
	}

	return events, total, rows.Err()
}

// nullableJSON maps an empty payload to NULL instead of an empty string,
// which MariaDB's JSON column type rejects.
func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
