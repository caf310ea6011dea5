package domain

import "time"

// Identity is the principal produced by a successful credential check.
// It never carries the password hash.
type Identity struct {
	UserID      string
	DisplayName string
	Email       string
}

// Claim is the data decoded from a session token. It is trusted for route
// gating only; ownership decisions re-read the store.
type Claim struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IdentityOf strips a user down to its public identity.
func IdentityOf(u *User) *Identity {
	return &Identity{UserID: u.ID, DisplayName: u.DisplayName, Email: u.Email}
}
