package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/groupsplit/internal/storage/memory"
)

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(memory.New(), bcrypt.MinCost)

	user, err := a.Register(ctx, " Alice ", " Alice@Example.COM ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	t.Run("authenticate with any email casing", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "ALICE@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "alice@example.com", "wrong-password")
		assert.True(t, errors.Is(err, ErrInvalidCredentials))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "bob@example.com", "secret1")
		assert.True(t, errors.Is(err, ErrInvalidCredentials))
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := a.Register(ctx, "Other", "alice@example.com", "secret2")
		assert.True(t, errors.Is(err, ErrEmailExists))
	})

	t.Run("short password", func(t *testing.T) {
		_, err := a.Register(ctx, "Bob", "bob@example.com", "12345")
		assert.True(t, errors.Is(err, ErrWeakPassword))
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := a.Register(ctx, " ", "bob@example.com", "secret1")
		assert.True(t, errors.Is(err, ErrMissingFields))
	})
}

func TestNewPasswordAuthenticatorCostFallback(t *testing.T) {
	a := NewPasswordAuthenticator(memory.New(), 99)
	assert.Equal(t, bcrypt.DefaultCost, a.cost)
}
