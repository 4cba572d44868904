package auth

import (
	"testing"

	"repair-backend/internal/config"
	"repair-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)

	assert.True(t, VerifyPassword(hash, "admin123"))
	assert.False(t, VerifyPassword(hash, "admin124"))
	assert.False(t, VerifyPassword("not-a-hash", "admin123"))
}

func testJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 24
	cfg.JWT.Issuer = "repair-backend"
	return cfg
}

func TestTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())
	user := &models.User{ID: 7, Username: "joke", IsAdmin: true}

	token, err := manager.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "joke", claims.Username)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "repair-backend", claims.Issuer)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())
	token, err := manager.GenerateToken(&models.User{ID: 1, Username: "joke"})
	require.NoError(t, err)

	_, err = manager.ValidateToken(token + "x")
	assert.Error(t, err)

	_, err = manager.ValidateToken("definitely.not.ajwt")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager(testJWTConfig()).GenerateToken(&models.User{ID: 1, Username: "joke"})
	require.NoError(t, err)

	other := testJWTConfig()
	other.JWT.Secret = "different-secret"
	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	cfg := testJWTConfig()
	cfg.JWT.ExpirationHours = -1
	token, err := NewJWTManager(cfg).GenerateToken(&models.User{ID: 1, Username: "joke"})
	require.NoError(t, err)

	_, err = NewJWTManager(cfg).ValidateToken(token)
	assert.Error(t, err)
}
