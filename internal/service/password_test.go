package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/msomdec/songbook/internal/domain"
	"github.com/msomdec/songbook/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := service.NewPasswordHasher(4)

	hash, err := h.Hash("Passw0rd!")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd!", hash)

	ok, err := h.Verify("Passw0rd!", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("Passw0rd?", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	h := service.NewPasswordHasher(4)

	a, err := h.Hash("Passw0rd!")
	require.NoError(t, err)
	b, err := h.Hash("Passw0rd!")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := service.NewPasswordHasher(4)

	ok, err := h.Verify("Passw0rd!", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_TooLong(t *testing.T) {
	h := service.NewPasswordHasher(4)

	_, err := h.Hash(strings.Repeat("A", 73))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "got %v", err)
}

func TestPasswordViolations(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []string
	}{
		{"strong", "Passw0rd!", nil},
		{"lowercase only", "password", []string{
			"Password must contain at least one uppercase letter.",
			"Password must contain at least one number.",
			"Password must contain at least one special character.",
		}},
		{"empty", "", []string{
			"Password must be at least 8 characters long.",
			"Password must contain at least one uppercase letter.",
			"Password must contain at least one lowercase letter.",
			"Password must contain at least one number.",
			"Password must contain at least one special character.",
		}},
		{"short", "Pa0!", []string{
			"Password must be at least 8 characters long.",
		}},
		{"symbol outside set", "Passw0rd_", []string{
			"Password must contain at least one special character.",
		}},
		{"non-ascii letters", "ÄÖÜäöü1!x", []string{
			"Password must contain at least one uppercase letter.",
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, service.PasswordViolations(tc.password))
		})
	}
}

func TestCheckPassword(t *testing.T) {
	assert.NoError(t, service.CheckPassword("Passw0rd!"))

	err := service.CheckPassword("password")
	var pe *domain.PolicyError
	require.True(t, errors.As(err, &pe))
	assert.Len(t, pe.Violations, 3)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
