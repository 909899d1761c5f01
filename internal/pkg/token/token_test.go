package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	tok, err := Generate("507f1f77bcf86cd799439011", "scout@example.com", "test-secret", 1)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Validate(tok, "test-secret")
	require.NoError(t, err)
	require.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	require.Equal(t, "scout@example.com", claims.Email)
}

func TestValidateWrongSecret(t *testing.T) {
	tok, err := Generate("507f1f77bcf86cd799439011", "scout@example.com", "test-secret", 1)
	require.NoError(t, err)

	_, err = Validate(tok, "other-secret")
	require.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	_, err := Validate("not-a-jwt", "test-secret")
	require.Error(t, err)
}
