package domain

import (
	"context"
	"time"
)

// User represents a registered user of the application.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository defines persistence operations for users.
// Create must enforce email uniqueness itself and return ErrDuplicateEmail.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
