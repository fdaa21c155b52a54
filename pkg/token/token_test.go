package token_test

import (
	"testing"
	"time"

	"github.com/crickonnect/crickonnect-api/pkg/token"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidateJWT(t *testing.T) {
	signed, err := token.GenerateJWT(42, "player", testSecret, 15)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := token.ValidateJWT(signed, testSecret)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "player", claims.Role)
	require.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	signed, err := token.GenerateJWT(7, "ground_owner", testSecret, 15)
	require.NoError(t, err)

	_, err = token.ValidateJWT(signed, "other-secret")
	require.Error(t, err)
}

func TestValidateJWT_Expired(t *testing.T) {
	signed, err := token.GenerateJWT(7, "player", testSecret, -1)
	require.NoError(t, err)

	_, err = token.ValidateJWT(signed, testSecret)
	require.Error(t, err)
	require.Contains(t, err.Error(), "expired")
}

func TestValidateJWT_Empty(t *testing.T) {
	_, err := token.ValidateJWT("", testSecret)
	require.Error(t, err)
}
