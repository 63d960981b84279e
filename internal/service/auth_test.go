package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auction-storefront/internal/auth"
	"auction-storefront/internal/kv"
	"auction-storefront/internal/model"
)

func TestSignupGrantsStartingBalance(t *testing.T) {
	env := newTestEnv(t, kv.NewMemoryStore())
	ctx := context.Background()

	user, token, err := env.auth.Signup(ctx, "Alice", "alice@winzo.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, int64(1000), user.Coins)

	// The sanitized user never carries a hash, and the persisted record
	// never carries the plaintext.
	stored, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Password)
	assert.NotEqual(t, "secret", stored.Password)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, kv.NewMemoryStore())
	ctx := context.Background()

	_, _, err := env.auth.Signup(ctx, "Alice", "alice@winzo.com", "secret")
	require.NoError(t, err)

	_, _, err = env.auth.Signup(ctx, "Other Alice", "ALICE@winzo.com", "other")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, kv.NewMemoryStore())
	ctx := context.Background()

	_, _, err := env.auth.Signup(ctx, "Alice", "alice@winzo.com", "secret")
	require.NoError(t, err)

	user, token, err := env.auth.Login(ctx, "alice@winzo.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Alice", user.Name)

	_, _, err = env.auth.Login(ctx, "alice@winzo.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email looks the same as a wrong password.
	_, _, err = env.auth.Login(ctx, "nobody@winzo.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserFromToken(t *testing.T) {
	env := newTestEnv(t, kv.NewMemoryStore())
	ctx := context.Background()

	signedUp, token, err := env.auth.Signup(ctx, "Alice", "alice@winzo.com", "secret")
	require.NoError(t, err)

	user, err := env.auth.UserFromToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, signedUp.ID, user.ID)
	assert.Equal(t, signedUp.Email, user.Email)

	_, err = env.auth.UserFromToken(ctx, "not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestUserFromTokenDeletedUser(t *testing.T) {
	env := newTestEnv(t, kv.NewMemoryStore())
	ctx := context.Background()

	_, token, err := env.auth.Signup(ctx, "Alice", "alice@winzo.com", "secret")
	require.NoError(t, err)

	require.NoError(t, env.users.SaveAll(ctx, nil))

	_, err = env.auth.UserFromToken(ctx, token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
