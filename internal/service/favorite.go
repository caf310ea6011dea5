package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/songbook/internal/domain"
)

// FavoriteService manages a user's favorite songs. Every method takes the
// caller's claim and enforces ownership against the store, so handlers
// never make authorization decisions themselves.
type FavoriteService struct {
	favorites    domain.FavoriteRepository
	users        domain.UserRepository
	storeTimeout time.Duration
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(favorites domain.FavoriteRepository, users domain.UserRepository, storeTimeout time.Duration) *FavoriteService {
	return &FavoriteService{
		favorites:    favorites,
		users:        users,
		storeTimeout: storeTimeout,
	}
}

// Create adds a song to the caller's favorites.
func (s *FavoriteService) Create(ctx context.Context, claim *domain.Claim, song string) (*domain.Favorite, error) {
	if err := requireSession(claim); err != nil {
		return nil, err
	}

	song = strings.TrimSpace(song)
	if song == "" {
		return nil, fmt.Errorf("%w: song name is required", domain.ErrInvalidInput)
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.requireUser(ctx, claim); err != nil {
		return nil, err
	}

	fav := &domain.Favorite{
		UserID: claim.UserID,
		Song:   song,
	}
	if err := s.favorites.Create(ctx, fav); err != nil {
		return nil, fmt.Errorf("create favorite: %w", err)
	}

	return fav, nil
}

// List returns the caller's favorites, newest first.
func (s *FavoriteService) List(ctx context.Context, claim *domain.Claim) ([]domain.Favorite, error) {
	if err := requireSession(claim); err != nil {
		return nil, err
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	favs, err := s.favorites.ListByUser(ctx, claim.UserID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favs, nil
}

// Get returns one favorite owned by the caller.
func (s *FavoriteService) Get(ctx context.Context, claim *domain.Claim, id string) (*domain.Favorite, error) {
	if err := requireSession(claim); err != nil {
		return nil, err
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	return s.requireOwnership(ctx, claim, id)
}

// Delete removes one favorite owned by the caller. A missing favorite is
// domain.ErrNotFound and a favorite owned by someone else is
// domain.ErrForbidden.
func (s *FavoriteService) Delete(ctx context.Context, claim *domain.Claim, id string) error {
	if err := requireSession(claim); err != nil {
		return err
	}

	if id == "" {
		return fmt.Errorf("%w: favorite id is required", domain.ErrInvalidInput)
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.requireUser(ctx, claim); err != nil {
		return err
	}

	if _, err := s.requireOwnership(ctx, claim, id); err != nil {
		return err
	}

	// The store re-checks the owner, so a concurrent delete surfaces as
	// ErrNotFound rather than removing someone else's row.
	if err := s.favorites.Delete(ctx, id, claim.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}

func requireSession(claim *domain.Claim) error {
	if claim == nil || claim.UserID == "" {
		return fmt.Errorf("%w: no session", domain.ErrUnauthenticated)
	}
	return nil
}

// requireUser re-reads the claim's user. Tokens outlive deleted accounts
// until they expire.
func (s *FavoriteService) requireUser(ctx context.Context, claim *domain.Claim) error {
	if _, err := s.users.GetByID(ctx, claim.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: session user no longer exists", domain.ErrUnauthenticated)
		}
		return fmt.Errorf("get user: %w", err)
	}
	return nil
}

func (s *FavoriteService) requireOwnership(ctx context.Context, claim *domain.Claim, id string) (*domain.Favorite, error) {
	fav, err := s.favorites.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get favorite: %w", err)
	}
	if fav.UserID != claim.UserID {
		return nil, domain.ErrForbidden
	}
	return fav, nil
}
