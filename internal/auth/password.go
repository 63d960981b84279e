// Package auth implements password hashing and bearer token issuance.
// It performs pure computation only; storing tokens is the caller's job.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash of the provided password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassword compares a plaintext password against a stored hash.
// Stored hashes are bcrypt for accounts created by this service; records
// persisted by earlier releases used "salt:hexdigest" with SHA-256 over
// password+salt, and those still verify.
func VerifyPassword(password, stored string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return verifyLegacy(password, stored)
}

func verifyLegacy(password, stored string) bool {
	salt, want, ok := strings.Cut(stored, ":")
	if !ok {
		return false
	}
	sum := sha256.Sum256([]byte(password + salt))
	got := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
