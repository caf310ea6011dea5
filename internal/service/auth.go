package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/songbook/internal/domain"
)

// AuthService handles user registration, credential verification and
// session token operations.
type AuthService struct {
	users        domain.UserRepository
	hasher       *PasswordHasher
	tokens       *TokenService
	storeTimeout time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, hasher *PasswordHasher, tokens *TokenService, storeTimeout time.Duration) *AuthService {
	return &AuthService{
		users:        users,
		hasher:       hasher,
		tokens:       tokens,
		storeTimeout: storeTimeout,
	}
}

// Register creates a new user account after validating inputs and the
// password policy.
func (s *AuthService) Register(ctx context.Context, displayName, email, password string) (*domain.User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields are required", domain.ErrInvalidInput)
	}

	if err := CheckPassword(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Authorize verifies an email/password pair. Failures are
// domain.ErrMissingCredentials, domain.ErrUserNotFound or
// domain.ErrInvalidPassword; anything else is an internal error.
func (s *AuthService) Authorize(ctx context.Context, email, password string) (*domain.Identity, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidPassword
	}

	return domain.IdentityOf(user), nil
}

// Login verifies credentials and returns a signed session token together
// with the authenticated identity.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	identity, err := s.Authorize(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(identity)
	if err != nil {
		return "", nil, err
	}

	return token, identity, nil
}

// ValidateToken decodes a session token into its claim.
func (s *AuthService) ValidateToken(token string) (*domain.Claim, error) {
	return s.tokens.Validate(token)
}

// SessionTTL is the lifetime of issued session tokens.
func (s *AuthService) SessionTTL() time.Duration {
	return s.tokens.TTL()
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()
	return s.users.GetByID(ctx, id)
}
