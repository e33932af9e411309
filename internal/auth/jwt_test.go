package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	secret := []byte("s3cr3t")

	tok, err := GenerateToken("textdesk", "req-1", secret, time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "textdesk", claims.Subject)
	assert.Equal(t, "req-1", claims.RequestID)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := GenerateToken("textdesk", "", []byte("a"), time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("b"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid))
}

func TestParse_Expired(t *testing.T) {
	tok, err := GenerateToken("textdesk", "", []byte("a"), -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("a"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}
