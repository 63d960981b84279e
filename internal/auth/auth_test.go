package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auction-storefront/internal/model"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	require.NotEqual(t, "admin123", hash)

	assert.True(t, VerifyPassword("admin123", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestVerifyPasswordLegacyFormat(t *testing.T) {
	// Records persisted by earlier releases stored salt:hexdigest with
	// SHA-256 over password+salt.
	sum := sha256.Sum256([]byte("user123" + "usersalt123"))
	legacy := "usersalt123:" + hex.EncodeToString(sum[:])

	assert.True(t, VerifyPassword("user123", legacy))
	assert.False(t, VerifyPassword("user124", legacy))
	assert.False(t, VerifyPassword("user123", "not-a-hash"))
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.IssueToken(42, "user@winzo.com", model.RoleUser)
	require.NoError(t, err)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user@winzo.com", claims.Email)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.IssueToken(42, "user@winzo.com", model.RoleUser)
	require.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenTampered(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.IssueToken(42, "user@winzo.com", model.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", token},
		{"malformed", "not.a.token"},
		{"empty", ""},
		{"flipped byte", token[:len(token)-2] + "xx"},
	}

	other := NewTokenManager("other-secret", time.Hour)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := other.VerifyToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
