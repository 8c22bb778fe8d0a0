package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/calebmorris/devfolio/internal/config"
)

// EnsureAdminUser creates the bootstrap admin account on first start.
// It is a no-op when any user already exists, so it is safe to call on
// every boot. When the table is empty but ADMIN_PASSWORD is unset, it
// warns and skips rather than creating an account with a known password.
func EnsureAdminUser(ctx context.Context, repo UserRepository, cfg config.AdminConfig) error {
	count, err := repo.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return nil
	}

	if cfg.Password == "" {
		slog.Warn("users table is empty and ADMIN_PASSWORD is unset; skipping admin bootstrap")
		return nil
	}

	hash, err := HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("hashing bootstrap password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(cfg.Email)),
		DisplayName:  strings.TrimSpace(cfg.Name),
		PasswordHash: hash,
		Role:         RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := repo.Create(ctx, user); err != nil {
		return fmt.Errorf("creating bootstrap admin: %w", err)
	}

	slog.Info("created bootstrap admin user",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return nil
}
