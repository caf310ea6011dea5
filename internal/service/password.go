package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/msomdec/songbook/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used when none is configured.
const DefaultBcryptCost = 10

// PasswordSymbols is the punctuation set accepted by the symbol rule.
const PasswordSymbols = `!@#$%^&*(),.?":{}|<>`

// PasswordHasher hashes and verifies passwords with bcrypt. The salt and cost
// are embedded in each hash, so only the hash needs to be stored.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher with the given bcrypt cost.
func NewPasswordHasher(cost int) *PasswordHasher {
	return &PasswordHasher{cost: cost}
}

// Hash returns a salted bcrypt hash of plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password must be at most 72 bytes", domain.ErrInvalidInput)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A wrong password is not an
// error; only an unusable stored hash is.
func (h *PasswordHasher) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		return false, nil
	default:
		return false, fmt.Errorf("compare password hash: %w", err)
	}
}

type passwordRule struct {
	violation string
	satisfied func(string) bool
}

var passwordRules = []passwordRule{
	{"Password must be at least 8 characters long.", func(p string) bool {
		return utf8.RuneCountInString(p) >= 8
	}},
	{"Password must contain at least one uppercase letter.", func(p string) bool {
		return strings.ContainsFunc(p, func(r rune) bool { return r >= 'A' && r <= 'Z' })
	}},
	{"Password must contain at least one lowercase letter.", func(p string) bool {
		return strings.ContainsFunc(p, func(r rune) bool { return r >= 'a' && r <= 'z' })
	}},
	{"Password must contain at least one number.", func(p string) bool {
		return strings.ContainsFunc(p, func(r rune) bool { return r >= '0' && r <= '9' })
	}},
	{"Password must contain at least one special character.", func(p string) bool {
		return strings.ContainsAny(p, PasswordSymbols)
	}},
}

// PasswordViolations lists every strength rule password fails, in rule order.
// An empty result means the password is acceptable.
func PasswordViolations(password string) []string {
	var violations []string
	for _, rule := range passwordRules {
		if !rule.satisfied(password) {
			violations = append(violations, rule.violation)
		}
	}
	return violations
}

// CheckPassword returns a *domain.PolicyError when password fails any rule.
func CheckPassword(password string) error {
	if v := PasswordViolations(password); len(v) > 0 {
		return &domain.PolicyError{Violations: v}
	}
	return nil
}
