package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/calebmorris/devfolio/internal/apperror"
)

// MessageRepository defines data access for contact messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error
	FindByID(ctx context.Context, id string) (*Message, error)
	List(ctx context.Context, limit, offset int) ([]Message, int, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	CountUnread(ctx context.Context) (int, error)
}

type mariaDBMessageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a MariaDB-backed message repository.
func NewMessageRepository(db *sql.DB) MessageRepository {
	return &mariaDBMessageRepository{db: db}
}

const messageColumns = `id, name, email, subject, body, project_type, budget, ip_address, user_agent, is_read, created_at`

func (r *mariaDBMessageRepository) Create(ctx context.Context, msg *Message) error {
	query := `INSERT INTO contact_messages (id, name, email, subject, body, project_type, budget, ip_address, user_agent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Body,
		msg.ProjectType, msg.Budget, msg.IPAddress, msg.UserAgent,
	)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("failed to create contact message: %w", err))
	}
	return nil
}

func (r *mariaDBMessageRepository) FindByID(ctx context.Context, id string) (*Message, error) {
	query := fmt.Sprintf(`SELECT %s FROM contact_messages WHERE id = ?`, messageColumns)

	var msg Message
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Body,
		&msg.ProjectType, &msg.Budget, &msg.IPAddress, &msg.UserAgent,
		&msg.IsRead, &msg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NewNotFound("message not found")
		}
		return nil, apperror.NewInternal(fmt.Errorf("failed to find contact message: %w", err))
	}
	return &msg, nil
}

func (r *mariaDBMessageRepository) List(ctx context.Context, limit, offset int) ([]Message, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&total); err != nil {
		return nil, 0, apperror.NewInternal(fmt.Errorf("failed to count contact messages: %w", err))
	}

	query := fmt.Sprintf(`SELECT %s FROM contact_messages ORDER BY created_at DESC LIMIT ? OFFSET ?`, messageColumns)
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, apperror.NewInternal(fmt.Errorf("failed to list contact messages: %w", err))
	}
	defer rows.Close()

	messages := make([]Message, 0, limit)
	for rows.Next() {
		var msg Message
		err := rows.Scan(
			&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Body,
			&msg.ProjectType, &msg.Budget, &msg.IPAddress, &msg.UserAgent,
			&msg.IsRead, &msg.CreatedAt,
		)
		if err != nil {
			return nil, 0, apperror.NewInternal(fmt.Errorf("failed to scan contact message: %w", err))
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewInternal(fmt.Errorf("failed to iterate contact messages: %w", err))
	}
	return messages, total, nil
}

func (r *mariaDBMessageRepository) MarkRead(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE contact_messages SET is_read = TRUE WHERE id = ?`, id)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("failed to mark contact message read: %w", err))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperror.NewNotFound("message not found")
	}
	return nil
}

func (r *mariaDBMessageRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("failed to delete contact message: %w", err))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperror.NewNotFound("message not found")
	}
	return nil
}

func (r *mariaDBMessageRepository) CountUnread(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages WHERE is_read = FALSE`).Scan(&total)
	if err != nil {
		return 0, apperror.NewInternal(fmt.Errorf("failed to count unread messages: %w", err))
	}
	return total, nil
}
