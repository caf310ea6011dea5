package domain

import (
	"context"
	"time"
)

// Favorite is a song saved by its owner.
type Favorite struct {
	ID        string
	UserID    string
	Song      string
	CreatedAt time.Time
}

// FavoriteRepository defines persistence operations for favorites.
type FavoriteRepository interface {
	Create(ctx context.Context, fav *Favorite) error
	GetByID(ctx context.Context, id string) (*Favorite, error)
	// ListByUser returns the user's favorites, newest first.
	ListByUser(ctx context.Context, userID string) ([]Favorite, error)
	// Delete removes the favorite only if it belongs to userID.
	// Returns ErrNotFound when no row matched.
	Delete(ctx context.Context, id, userID string) error
}
