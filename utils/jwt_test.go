package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(secret, "booster-1", RoleBooster, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "booster-1", claims.Subject)
	assert.Equal(t, RoleBooster, claims.Role)
}

func TestValidateTokenRejects(t *testing.T) {
	secret := []byte("test-secret")

	expired, err := GenerateToken(secret, "u1", RoleAdmin, -time.Minute)
	require.NoError(t, err)
	other, err := GenerateToken([]byte("other"), "u1", RoleAdmin, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret []byte
		token  string
	}{
		{"expired", secret, expired},
		{"wrong secret", secret, other},
		{"garbage", secret, "not-a-token"},
		{"no secret configured", nil, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateToken(tt.secret, tt.token)
			assert.Error(t, err)
		})
	}
}

func TestValidateTokenDefaultsRole(t *testing.T) {
	secret := []byte("s")
	token, err := GenerateToken(secret, "c1", "", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, RoleCustomer, claims.Role)
}
