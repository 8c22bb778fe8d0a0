// Package auth guards the admin area of the site. It provides the signed
// session token codec, the password verifier, the authenticator that checks
// credentials against the users table, and the request gate middleware that
// decides allow/redirect for every inbound page request.
//
// Sessions are stateless: the cookie value is a signed token re-verified on
// every request, and nothing is stored server-side. Logout just clears the
// cookie; expiry is the only other termination.
package auth

import "time"

// User is a persisted account. Only active users may authenticate. Rows are
// created by the startup seeder and mutated on each successful login
// (last_login_at, login_count); nothing here deletes them.
type User struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	DisplayName     string     `json:"display_name"`
	PasswordHash    string     `json:"-"` // Never expose in JSON responses.
	Role            Role       `json:"role"`
	IsActive        bool       `json:"is_active"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	LoginCount      int        `json:"login_count"`
	CreatedAt       time.Time  `json:"created_at"`
}

// PublicUser is the profile returned to clients after authentication.
// Deliberately excludes the password hash and bookkeeping fields.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Public returns the client-safe view of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.DisplayName,
		Role:  u.Role,
	}
}

// LoginRequest holds the credentials submitted to POST /api/auth/login.
// The pair is checked once and never stored.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}
