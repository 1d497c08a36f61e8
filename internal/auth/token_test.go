package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.GenerateToken(42, 20)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, int64(20), claims.UserRoleID)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 60).GenerateToken(1, 18)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 60).ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}
	token, _, err := tm.GenerateToken(1, 18)
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}

func TestPasswordHashAndCompare(t *testing.T) {
	hash, err := HashPassword("s3cret!", 4)
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hash, "s3cret!"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}
