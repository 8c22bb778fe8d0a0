package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/calebmorris/devfolio/internal/apperror"
)

// UserRepository defines the data access contract for user accounts.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)

	// FindActiveByEmail looks up a user by exact email match AND
	// is_active = true. Inactive accounts and unknown emails are
	// indistinguishable to callers: both return not-found.
	FindActiveByEmail(ctx context.Context, email string) (*User, error)

	// RecordLogin bumps login_count and stamps last_login_at. A single
	// UPDATE, so concurrent logins by the same user race harmlessly.
	RecordLogin(ctx context.Context, id string) error

	CountUsers(ctx context.Context) (int, error)
}

// userRepository implements UserRepository with hand-written MariaDB queries.
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository backed by the given DB pool.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, display_name, password_hash, role, is_active,
                     email_verified_at, last_login_at, login_count, created_at`

// Create inserts a new user row.
func (r *userRepository) Create(ctx context.Context, user *User) error {
	query := `INSERT INTO users (id, email, display_name, password_hash, role, is_active, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		string(user.Role),
		user.IsActive,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

// FindByID retrieves a user by their UUID.
// Returns apperror.NotFound if no user exists with this ID.
func (r *userRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// FindActiveByEmail retrieves an active user by email address.
func (r *userRepository) FindActiveByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ? AND is_active = TRUE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// RecordLogin updates the login bookkeeping columns for the given user.
func (r *userRepository) RecordLogin(ctx context.Context, id string) error {
	query := `UPDATE users SET last_login_at = NOW(), login_count = login_count + 1 WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("recording login: %w", err)
	}

	return nil
}

// CountUsers returns the total number of accounts. Used by the startup
// seeder to decide whether to create the bootstrap admin.
func (r *userRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

// scanOne scans a single user row, mapping sql.ErrNoRows to NotFound.
func (r *userRepository) scanOne(row *sql.Row) (*User, error) {
	user := &User{}
	var role string
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&role,
		&user.IsActive,
		&user.EmailVerifiedAt,
		&user.LastLoginAt,
		&user.LoginCount,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	user.Role = Role(role)

	return user, nil
}
