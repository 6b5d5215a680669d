package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crimegpt/config"
)

func testConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessExpiry:  time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "crimegpt",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateAccessToken(cfg, 42, "a@b.test", "ahmed khan", "admin")
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "a@b.test", claims.Email)
	assert.Equal(t, "ahmed khan", claims.FullName)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "crimegpt", claims.Issuer)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateAccessToken(cfg, 42, "a@b.test", "ahmed khan", "user")
	require.NoError(t, err)

	other := testConfig()
	other.AccessSecret = "different"
	_, err = ParseAccessToken(other, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessTokenExpired(t *testing.T) {
	cfg := testConfig()
	cfg.AccessExpiry = -time.Minute
	token, err := GenerateAccessToken(cfg, 42, "a@b.test", "ahmed khan", "user")
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSubjectTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateRefreshToken(cfg, 7)
	require.NoError(t, err)

	id, err := ParseSubjectToken(cfg.RefreshSecret, token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, id)

	// A refresh token must not verify against the access secret.
	_, err = ParseSubjectToken(cfg.AccessSecret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetTokenUsesAccessSecret(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateResetToken(cfg, 9)
	require.NoError(t, err)

	id, err := ParseSubjectToken(cfg.AccessSecret, token)
	require.NoError(t, err)
	assert.EqualValues(t, 9, id)
}
