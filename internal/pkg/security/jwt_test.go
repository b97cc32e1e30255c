package security

import (
	"Atelier/internal/api/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setJWTConfig(t *testing.T, secret string) {
	t.Helper()
	prev := config.Cfg
	config.Cfg = &config.Config{
		JWT: config.JWTConfig{
			Secret:          secret,
			UserExpireHours: 720,
			AdminExpireHour: 24,
		},
	}
	t.Cleanup(func() { config.Cfg = prev })
}

func TestUserTokenRoundTrip(t *testing.T) {
	setJWTConfig(t, "unit-test-secret")

	token, err := GenerateUserToken("68b1f000000000000000000a", "alice@example.com", "alice")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "68b1f000000000000000000a", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "alice", claims.Name)
	// 普通会话不携带角色
	assert.Empty(t, claims.Role)
}

func TestAdminTokenCarriesRole(t *testing.T) {
	setJWTConfig(t, "unit-test-secret")

	token, err := GenerateAdminToken("68b1f000000000000000000a", "root@example.com", "root", "admin")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	setJWTConfig(t, "unit-test-secret")

	token, err := GenerateUserToken("68b1f000000000000000000a", "alice@example.com", "alice")
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)

	_, err = ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	setJWTConfig(t, "secret-a")
	token, err := GenerateUserToken("68b1f000000000000000000a", "alice@example.com", "alice")
	require.NoError(t, err)

	setJWTConfig(t, "secret-b")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, CheckPasswordHash("secret123", hash))
	assert.Error(t, CheckPasswordHash("wrong", hash))

	_, err = HashPassword("")
	assert.Error(t, err)
}
