// Package auth implements credential handling: password hashing, reset
// tokens, and signed bearer tokens.
package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ResetTokenTTL is how long a password reset token stays valid.
const ResetTokenTTL = time.Hour

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext password matches the hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateResetToken produces an opaque reset token and its expiry.
func GenerateResetToken() (string, time.Time) {
	return uuid.NewString(), time.Now().Add(ResetTokenTTL)
}

// ResetTokenExpired reports whether a reset token expiry has passed.
func ResetTokenExpired(expiresAt time.Time) bool {
	return time.Now().After(expiresAt)
}
