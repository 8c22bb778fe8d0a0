package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/calebmorris/devfolio/internal/apperror"
)

// genericCredentialsMessage is the one message every authentication
// failure produces. Unknown email, inactive account, missing hash, and
// wrong password are deliberately indistinguishable to the caller so the
// endpoint can't be used to enumerate accounts.
const genericCredentialsMessage = "invalid email or password"

// AuthService is the business logic contract for authentication.
// Handlers call these methods -- they never touch the repository directly.
type AuthService interface {
	// Authenticate checks an email/password pair. On success it returns the
	// public profile (never the hash) after best-effort login bookkeeping.
	// Every failure mode returns the same generic unauthorized error.
	Authenticate(ctx context.Context, email, password string) (*PublicUser, error)

	// Profile returns the public profile for an active user by ID.
	Profile(ctx context.Context, userID string) (*PublicUser, error)
}

// authService implements AuthService with bcrypt verification against the
// users table.
type authService struct {
	repo UserRepository
}

// NewAuthService creates a new auth service with the given repository.
func NewAuthService(repo UserRepository) AuthService {
	return &authService{repo: repo}
}

// Authenticate verifies credentials against the stored account.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*PublicUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.FindActiveByEmail(ctx, email)
	if err != nil {
		if apperror.SafeCode(err) == 404 {
			return nil, apperror.NewUnauthorized(genericCredentialsMessage)
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	// A row without a stored hash (externally provisioned, never given a
	// password) can never authenticate.
	if user.PasswordHash == "" {
		return nil, apperror.NewUnauthorized(genericCredentialsMessage)
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, apperror.NewUnauthorized(genericCredentialsMessage)
	}

	// Login bookkeeping is best-effort: a failed counter update must not
	// fail the login.
	if err := s.repo.RecordLogin(ctx, user.ID); err != nil {
		slog.Warn("failed to record login",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user.Public(), nil
}

// Profile looks up the current profile for a verified token's subject.
// An account deactivated after token issuance reads as unauthorized.
func (s *authService) Profile(ctx context.Context, userID string) (*PublicUser, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if apperror.SafeCode(err) == 404 {
			return nil, apperror.NewUnauthorized("authentication required")
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}
	if !user.IsActive {
		return nil, apperror.NewUnauthorized("authentication required")
	}

	return user.Public(), nil
}
