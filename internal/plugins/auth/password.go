package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the bcrypt work factor. Cost 12 takes roughly a quarter
// second per hash on modest hardware, which is acceptable for a site with
// a handful of admin users and makes offline cracking expensive.
const bcryptCost = 12

// HashPassword produces a bcrypt digest of the plaintext password.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(digest), nil
}

// VerifyPassword reports whether plaintext matches the stored digest.
// bcrypt's compare primitive is constant-time over the derived key, so
// this leaks no timing information beyond what bcrypt itself guarantees.
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
