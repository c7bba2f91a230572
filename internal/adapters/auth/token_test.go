package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokens_Issue(t *testing.T) {
	secret := "test-secret"
	tokens := NewJWTTokens(secret)

	token, err := tokens.Issue("user-123", "u@example.com", 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
}

func TestJWTTokens_Verify_roundTrip(t *testing.T) {
	tokens := NewJWTTokens("test-secret")

	token, err := tokens.Issue("user-123", "u@example.com", time.Hour)
	require.NoError(t, err)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestJWTTokens_Verify_wrongSecret(t *testing.T) {
	issuer := NewJWTTokens("secret-a")
	verifier := NewJWTTokens("secret-b")

	token, err := issuer.Issue("user-123", "u@example.com", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestJWTTokens_Verify_expired(t *testing.T) {
	tokens := NewJWTTokens("test-secret")

	token, err := tokens.Issue("user-123", "u@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.Error(t, err)
}

func TestJWTTokens_Verify_garbage(t *testing.T) {
	tokens := NewJWTTokens("test-secret")
	_, err := tokens.Verify("not-a-jwt")
	assert.Error(t, err)
}
