package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	t.Run("jwt with exp", func(t *testing.T) {
		tok := signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})
		got, ok := TokenExpiry(tok)
		require.True(t, ok)
		assert.True(t, exp.Equal(got), "want %v got %v", exp, got)
	})

	t.Run("expired jwt still reports", func(t *testing.T) {
		past := time.Now().Add(-time.Hour).Truncate(time.Second)
		got, ok := TokenExpiry(signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(past)}))
		require.True(t, ok)
		assert.True(t, past.Equal(got))
	})

	t.Run("jwt without exp", func(t *testing.T) {
		_, ok := TokenExpiry(signed(t, jwt.RegisteredClaims{Subject: "a@b.com"}))
		assert.False(t, ok)
	})

	t.Run("opaque", func(t *testing.T) {
		_, ok := TokenExpiry("T1")
		assert.False(t, ok)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := TokenExpiry("")
		assert.False(t, ok)
	})
}
