package auth

import (
	"testing"

	"ca-backend/internal/config"
	"ca-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTManager(secret string) *JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "ca-backend"
	return NewJWTManager(cfg)
}

func TestJWTRoundTrip(t *testing.T) {
	mgr := testJWTManager("test-secret")
	user := &models.User{ID: 7, Email: "ravi@ca-firm.example", Role: "manager"}

	token, err := mgr.GenerateToken(user)
	require.NoError(t, err)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "ravi@ca-firm.example", claims.Email)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, "ca-backend", claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := testJWTManager("secret-a").GenerateToken(&models.User{ID: 1})
	require.NoError(t, err)

	_, err = testJWTManager("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestTempTokenIsNotAFullToken(t *testing.T) {
	mgr := testJWTManager("test-secret")
	user := &models.User{ID: 7, Email: "ravi@ca-firm.example", Role: "manager"}

	temp, err := mgr.GenerateTempToken(user)
	require.NoError(t, err)

	claims, err := mgr.ValidateTempToken(temp)
	require.NoError(t, err)
	assert.Equal(t, "2fa_pending", claims.Type)

	// A full token must not pass the temp validation path.
	full, err := mgr.GenerateToken(user)
	require.NoError(t, err)
	_, err = mgr.ValidateTempToken(full)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}
