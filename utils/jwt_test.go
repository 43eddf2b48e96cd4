package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("hang ten", time.Minute)

	token, err := issuer.GenerateJWT("64b7f0c2a1b2c3d4e5f60718")
	require.NoError(t, err)

	claims, err := issuer.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", claims.UserID)
	assert.Equal(t, "surf_shop", claims.Issuer)
}

func TestJWTRejectsOtherKey(t *testing.T) {
	token, err := NewTokenIssuer("one", time.Minute).GenerateJWT("u1")
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Minute).ValidateJWT(token)
	assert.EqualError(t, err, "invalid token signature")
}

func TestJWTRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("key", -time.Minute)
	token, err := issuer.GenerateJWT("u1")
	require.NoError(t, err)

	_, err = issuer.ValidateJWT(token)
	assert.EqualError(t, err, "token has expired")
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)
	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("password124", hash))
}
