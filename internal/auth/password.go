// Package auth implements the credential core: password hashing, the
// session token codec, and the session verifier that gates every
// protected route.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost matches the work factor the dashboard has always used.
const DefaultHashCost = 10

// DefaultMinPasswordLength is the only password-strength rule in effect.
const DefaultMinPasswordLength = 6

// ErrPasswordTooShort is returned when a password fails the length policy.
type ErrPasswordTooShort struct {
	Min int
}

func (e ErrPasswordTooShort) Error() string {
	return fmt.Sprintf("password must be at least %d characters", e.Min)
}

// PasswordPolicy validates candidate passwords before they are hashed.
type PasswordPolicy struct {
	MinLength int
}

// DefaultPasswordPolicy returns the policy currently enforced at signup
// and password change.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: DefaultMinPasswordLength}
}

// Validate checks the password against the policy. Length is counted in
// characters, not bytes.
func (p PasswordPolicy) Validate(password string) error {
	min := p.MinLength
	if min <= 0 {
		min = DefaultMinPasswordLength
	}
	if len([]rune(password)) < min {
		return ErrPasswordTooShort{Min: min}
	}
	return nil
}

// HashPassword derives a salted bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), DefaultHashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the stored hash.
// A mismatch is not an error; only a malformed hash would be.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
