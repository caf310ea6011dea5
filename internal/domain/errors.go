package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by services wraps exactly one of these,
// or none for internal failures.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

var ErrDuplicateEmail = fmt.Errorf("%w: email already exists", ErrConflict)

// Credential failures. Callers may distinguish them for logging, but
// user-facing output must only ever say "invalid credentials".
var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	ErrMissingCredentials = fmt.Errorf("%w: missing credentials", ErrInvalidCredentials)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrInvalidCredentials)
	ErrInvalidPassword    = fmt.Errorf("%w: invalid password", ErrInvalidCredentials)
)

// Session token failures.
var (
	ErrInvalidToken          = fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	ErrTokenMalformed        = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrTokenSignatureInvalid = fmt.Errorf("%w: signature invalid", ErrInvalidToken)
	ErrTokenExpired          = fmt.Errorf("%w: expired", ErrInvalidToken)
)

// PolicyError reports every password rule a candidate failed.
type PolicyError struct {
	Violations []string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("password does not meet requirements (%d violations)", len(e.Violations))
}

func (e *PolicyError) Unwrap() error {
	return ErrInvalidInput
}
