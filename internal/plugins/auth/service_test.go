package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/calebmorris/devfolio/internal/apperror"
)

// --- Mock Repository ---

// mockUserRepo implements UserRepository for testing.
type mockUserRepo struct {
	createFn            func(ctx context.Context, user *User) error
	findByIDFn          func(ctx context.Context, id string) (*User, error)
	findActiveByEmailFn func(ctx context.Context, email string) (*User, error)
	recordLoginFn       func(ctx context.Context, id string) error
	countUsersFn        func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("user not found")
}

func (m *mockUserRepo) FindActiveByEmail(ctx context.Context, email string) (*User, error) {
	if m.findActiveByEmailFn != nil {
		return m.findActiveByEmailFn(ctx, email)
	}
	return nil, apperror.NewNotFound("user not found")
}

func (m *mockUserRepo) RecordLogin(ctx context.Context, id string) error {
	if m.recordLoginFn != nil {
		return m.recordLoginFn(ctx, id)
	}
	return nil
}

func (m *mockUserRepo) CountUsers(ctx context.Context) (int, error) {
	if m.countUsersFn != nil {
		return m.countUsersFn(ctx)
	}
	return 0, nil
}

// --- Test Helpers ---

func testUser(t *testing.T, password string) *User {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hashing test password: %v", err)
	}
	return &User{
		ID:           "user-1",
		Email:        "caleb@example.com",
		DisplayName:  "Caleb",
		PasswordHash: hash,
		Role:         RoleAdmin,
		IsActive:     true,
	}
}

// assertGenericUnauthorized checks that err is a 401 carrying exactly the
// generic credentials message. Every authentication failure must be
// byte-identical to every other to keep account enumeration impossible.
func assertGenericUnauthorized(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", appErr.Code)
	}
	if appErr.Message != genericCredentialsMessage {
		t.Errorf("expected message %q, got %q", genericCredentialsMessage, appErr.Message)
	}
}

// --- Authenticate Tests ---

func TestAuthenticate_Success(t *testing.T) {
	user := testUser(t, "hunter2hunter2")
	recorded := false
	repo := &mockUserRepo{
		findActiveByEmailFn: func(ctx context.Context, email string) (*User, error) {
			if email != "caleb@example.com" {
				t.Errorf("expected lowercased trimmed email, got %q", email)
			}
			return user, nil
		},
		recordLoginFn: func(ctx context.Context, id string) error {
			recorded = true
			return nil
		},
	}

	svc := NewAuthService(repo)
	got, err := svc.Authenticate(context.Background(), "  Caleb@Example.COM ", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != "user-1" || got.Email != "caleb@example.com" || got.Role != RoleAdmin {
		t.Errorf("unexpected public user: %+v", got)
	}
	if !recorded {
		t.Error("expected login bookkeeping to run")
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	user := testUser(t, "hunter2hunter2")
	repo := &mockUserRepo{
		findActiveByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return user, nil
		},
	}

	_, err := NewAuthService(repo).Authenticate(context.Background(), "caleb@example.com", "wrong")
	assertGenericUnauthorized(t, err)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	repo := &mockUserRepo{} // FindActiveByEmail defaults to not found.

	_, err := NewAuthService(repo).Authenticate(context.Background(), "nobody@example.com", "whatever")
	assertGenericUnauthorized(t, err)
}

func TestAuthenticate_MissingHash(t *testing.T) {
	user := testUser(t, "hunter2hunter2")
	user.PasswordHash = ""
	repo := &mockUserRepo{
		findActiveByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return user, nil
		},
	}

	_, err := NewAuthService(repo).Authenticate(context.Background(), "caleb@example.com", "hunter2hunter2")
	assertGenericUnauthorized(t, err)
}

// All failure modes must produce the same message, not just the same code.
func TestAuthenticate_FailureModesIndistinguishable(t *testing.T) {
	withUser := &mockUserRepo{
		findActiveByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return testUser(t, "hunter2hunter2"), nil
		},
	}
	withoutUser := &mockUserRepo{}

	_, errWrongPassword := NewAuthService(withUser).Authenticate(context.Background(), "caleb@example.com", "bad")
	_, errUnknownEmail := NewAuthService(withoutUser).Authenticate(context.Background(), "nobody@example.com", "bad")

	var a, b *apperror.AppError
	if !errors.As(errWrongPassword, &a) || !errors.As(errUnknownEmail, &b) {
		t.Fatalf("expected AppErrors, got %v and %v", errWrongPassword, errUnknownEmail)
	}
	if a.Code != b.Code || a.Message != b.Message {
		t.Errorf("failure responses differ: (%d %q) vs (%d %q)", a.Code, a.Message, b.Code, b.Message)
	}
}

func TestAuthenticate_RecordLoginFailureTolerated(t *testing.T) {
	user := testUser(t, "hunter2hunter2")
	repo := &mockUserRepo{
		findActiveByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return user, nil
		},
		recordLoginFn: func(ctx context.Context, id string) error {
			return errors.New("disk on fire")
		},
	}

	got, err := NewAuthService(repo).Authenticate(context.Background(), "caleb@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("expected login to succeed despite bookkeeping failure, got %v", err)
	}
	if got == nil || got.ID != "user-1" {
		t.Errorf("unexpected user: %+v", got)
	}
}

// --- Profile Tests ---

func TestProfile_Success(t *testing.T) {
	user := testUser(t, "hunter2hunter2")
	repo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*User, error) {
			return user, nil
		},
	}

	got, err := NewAuthService(repo).Profile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if got.Email != "caleb@example.com" {
		t.Errorf("unexpected profile: %+v", got)
	}
}

func TestProfile_InactiveAccount(t *testing.T) {
	user := testUser(t, "hunter2hunter2")
	user.IsActive = false
	repo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*User, error) {
			return user, nil
		},
	}

	_, err := NewAuthService(repo).Profile(context.Background(), "user-1")
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for inactive account, got %v", err)
	}
}
