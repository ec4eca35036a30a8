package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWT(secret, 24*time.Hour)

	token, err := issuer.Issue(" Organizer@Example.com ")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "organizer@example.com", claims.Subject)
	assert.Equal(t, "organizer@example.com", claims.Email)

	_, err = issuer.Issue("  ")
	require.Error(t, err)
}

func TestJWT_Verify(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	j := NewJWT("test-secret", time.Hour)
	j.now = func() time.Time { return now }

	token, err := j.Issue("organizer@example.com")
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		email, err := j.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "organizer@example.com", email)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWT("other-secret", time.Hour)
		other.now = j.now
		_, err := other.Verify(token)
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewJWT("test-secret", time.Hour)
		later.now = func() time.Time { return now.Add(2 * time.Hour) }
		_, err := later.Verify(token)
		require.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := j.Verify("not-a-token")
		require.Error(t, err)
	})

	t.Run("other algorithm rejected", func(t *testing.T) {
		claims := jwtClaims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
			Email:            "organizer@example.com",
		}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = j.Verify(unsigned)
		require.Error(t, err)
	})
}
