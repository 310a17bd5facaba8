package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_IssueVerify(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	signed, expires, err := tokens.Issue(AdminSubject)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, AdminSubject, claims.Subject)
}

func TestTokens_Expired(t *testing.T) {
	tokens := NewTokens("secret", time.Minute)
	signed, _, err := tokens.Issue(AdminSubject)
	require.NoError(t, err)

	tokens.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_WrongSecret(t *testing.T) {
	signed, _, err := NewTokens("one", time.Hour).Issue(AdminSubject)
	require.NoError(t, err)

	_, err = NewTokens("two", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_NoSecret(t *testing.T) {
	_, _, err := NewTokens("", time.Hour).Issue(AdminSubject)
	assert.ErrorIs(t, err, ErrSecretMissing)
}
