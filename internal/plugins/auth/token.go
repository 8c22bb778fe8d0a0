package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single failure result of Verify. Signature
// mismatch, expiry, malformed structure, and missing claim fields all
// collapse into this error so callers never branch on library internals.
var ErrInvalidToken = errors.New("invalid session token")

// Role is the authorization level carried in the session token.
// Roles form a total order: ADMIN > EDITOR > VIEWER.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
)

// level returns the role's rank in the total order. Unknown roles rank
// below VIEWER and therefore never pass an AtLeast check.
func (r Role) level() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleEditor:
		return 2
	case RoleViewer:
		return 1
	default:
		return 0
	}
}

// Known reports whether r is one of the three defined roles.
func (r Role) Known() bool {
	return r.level() > 0
}

// AtLeast reports whether r grants at least the access level of min.
func (r Role) AtLeast(min Role) bool {
	return r.level() >= min.level()
}

// SessionClaims is the token payload: the bearer's identity plus the
// standard iat/exp timestamps. The JSON claim names are the wire format
// and must not change -- outstanding cookies encode them.
type SessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256-signed session tokens. Both
// operations are pure computation over the codec's secret -- no I/O, no
// shared mutable state, safe for concurrent use on every request.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec creates a codec signing with the given secret. Tokens
// expire ttl after issuance; there is no revocation mechanism, so
// rotating the secret is the only way to invalidate tokens early.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime. The session cookie's MaxAge
// must match it so cookie and token expire together.
func (tc *TokenCodec) TTL() time.Duration {
	return tc.ttl
}

// Issue builds and signs a token for the given user. A single clock
// reading feeds both iat and exp, so exp - iat always equals the TTL.
func (tc *TokenCodec) Issue(userID, email string, role Role) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tc.secret)
}

// Verify parses and validates a raw token string. On success it returns
// the typed claims. Every failure -- bad signature, expired, malformed,
// wrong algorithm, missing or blank payload fields -- returns
// ErrInvalidToken. Verify never panics and never surfaces parser errors.
func (tc *TokenCodec) Verify(raw string) (*SessionClaims, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) { return tc.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	// Signature and expiry check out; now enforce the payload shape.
	// A structurally valid token missing any required field is invalid,
	// not a partial success.
	if claims.UserID == "" || claims.Email == "" || !claims.Role.Known() {
		return nil, ErrInvalidToken
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
