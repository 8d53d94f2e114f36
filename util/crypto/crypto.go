// Package crypto wraps password hashing and verification for local accounts.
// Plaintext passwords are never stored or logged.
package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword generates a salted bcrypt hash of the given plaintext.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash verifies the plaintext against a stored bcrypt digest.
func CheckPasswordHash(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
