package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_IssueParse(t *testing.T) {
	j := NewJWT("secret", time.Hour)

	tok, err := j.Issue(42)
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	uid, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), uid)
}

func TestJWT_WrongSecret(t *testing.T) {
	tok, err := NewJWT("secret-A", time.Hour).Issue(5)
	require.NoError(t, err)

	_, err = NewJWT("secret-B", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_Expired(t *testing.T) {
	j := NewJWT("secret", time.Minute)
	past := time.Now().Add(-time.Hour)
	j.now = func() time.Time { return past }
	tok, err := j.Issue(7)
	require.NoError(t, err)

	// проверяем уже с реальным временем
	j.now = time.Now
	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_Garbage(t *testing.T) {
	_, err := NewJWT("secret", 0).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWT_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTokenTTL, NewJWT("s", 0).ttl)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("p@ssw0rd")
	require.NoError(t, err)
	assert.NotEqual(t, "p@ssw0rd", hash)
	assert.True(t, CheckPassword(hash, "p@ssw0rd"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
