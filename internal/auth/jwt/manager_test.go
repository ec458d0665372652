package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskintel/riskintel-backend/pkg/config"
	"github.com/riskintel/riskintel-backend/pkg/errors"
)

func testManager(accessExpiry time.Duration) *Manager {
	return NewManager(&config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  accessExpiry,
		RefreshExpiry: time.Hour,
		Issuer:        "riskintel-test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	m := testManager(time.Minute)

	pair, err := m.GenerateTokenPair(&UserInfo{
		ID:    "user-1",
		Email: "ana@example.com",
		Name:  "Ana",
	}, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := m.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana", claims.Name)

	refreshClaims, err := m.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", refreshClaims.UserID)
	assert.Equal(t, "session-1", refreshClaims.SessionID)
}

func TestValidateAccessTokenExpired(t *testing.T) {
	m := testManager(-time.Minute)

	pair, err := m.GenerateTokenPair(&UserInfo{ID: "user-1"}, "session-1")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.AccessToken)
	assert.True(t, errors.Is(err, errors.ErrTokenExpired))
}

func TestValidateAccessTokenTampered(t *testing.T) {
	m := testManager(time.Minute)

	pair, err := m.GenerateTokenPair(&UserInfo{ID: "user-1"}, "session-1")
	require.NoError(t, err)

	other := NewManager(&config.JWTConfig{
		Secret:        "another-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "riskintel-test",
	})

	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.True(t, errors.Is(err, errors.ErrTokenInvalid))

	_, err = m.ValidateAccessToken("not-a-token")
	assert.True(t, errors.Is(err, errors.ErrTokenInvalid))
}
