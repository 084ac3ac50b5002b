package util

import (
	"testing"
	"time"

	"cbt_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwtTestConfig(expireMinutes int) *config.JWTConfig {
	return &config.JWTConfig{
		SecretKey:                "jwt-test-secret-key-0123456789abcdef",
		Algorithm:                "HS256",
		AccessTokenExpireMinutes: expireMinutes,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := jwtTestConfig(60)

	token, err := GenerateToken(cfg, "ada")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := ParseToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "ada", subject)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	cfg := jwtTestConfig(60)
	token, err := GenerateToken(cfg, "ada")
	require.NoError(t, err)

	other := jwtTestConfig(60)
	other.SecretKey = "another-secret-key-entirely-0000000"
	_, err = ParseToken(other, token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ParseToken(cfg, token+"x")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ParseToken(cfg, "not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	cfg := jwtTestConfig(-5)
	token, err := GenerateToken(cfg, "ada")
	require.NoError(t, err)

	_, err = ParseToken(cfg, token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	subject, expiresAt, err := ParseTokenAllowExpired(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "ada", subject)
	assert.WithinDuration(t, time.Now().Add(-5*time.Minute), expiresAt, 5*time.Second)
}

func TestNonHMACAlgorithmRefused(t *testing.T) {
	cfg := jwtTestConfig(60)
	cfg.Algorithm = "RS256"

	_, err := GenerateToken(cfg, "ada")
	assert.Error(t, err)

	_, err = ParseToken(cfg, "whatever")
	assert.Error(t, err)
}
