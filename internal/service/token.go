package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/songbook/internal/domain"
)

// DefaultSessionTTL is the fixed lifetime of a session token. Sessions are
// not renewed on use.
const DefaultSessionTTL = 30 * 24 * time.Hour

const tokenIssuer = "songbook"

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and validates stateless HS256 session tokens.
// Nothing is stored server-side; changing the secret invalidates every
// outstanding token.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService signing with secret.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of s that reads the current time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	c := *s
	c.now = now
	return &c
}

// TTL is the lifetime given to issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token carrying the identity's user ID and email.
func (s *TokenService) Issue(identity *domain.Identity) (string, error) {
	now := s.now()
	claims := sessionClaims{
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies the token's signature and expiry and decodes its claim.
// Failures are domain.ErrTokenMalformed, domain.ErrTokenSignatureInvalid or
// domain.ErrTokenExpired.
func (s *TokenService) Validate(tokenString string) (*domain.Claim, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, domain.ErrTokenSignatureInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		default:
			return nil, fmt.Errorf("%w: %v", domain.ErrTokenMalformed, err)
		}
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrTokenMalformed)
	}

	claim := &domain.Claim{
		UserID:    claims.Subject,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		claim.IssuedAt = claims.IssuedAt.Time
	}
	return claim, nil
}
