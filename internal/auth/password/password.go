// Package password hashes and verifies store user credentials.
package password

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmptyPassword = errors.New("password must not be empty")

// Hash derives a bcrypt hash from the raw password.
func Hash(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether raw matches the stored hash.
func Verify(hashed, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}
