package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokens_RequiresSecret(t *testing.T) {
	_, err := NewTokens("  ", time.Hour)
	assert.Error(t, err)

	tokens, err := NewTokens("secret", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, tokens.ttl)
}

func TestTokens_IssueAndVerify(t *testing.T) {
	tokens, err := NewTokens("secret", time.Hour)
	require.NoError(t, err)

	token, expires, err := tokens.Issue("user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	id, err := tokens.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestTokens_VerifyRejectsExpired(t *testing.T) {
	tokens, err := NewTokens("secret", time.Minute)
	require.NoError(t, err)

	issued := time.Now().Add(-2 * time.Hour)
	tokens.now = func() time.Time { return issued }
	token, _, err := tokens.Issue("user-1")
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_VerifyRejectsForeignSignature(t *testing.T) {
	ours, err := NewTokens("secret", time.Hour)
	require.NoError(t, err)
	theirs, err := NewTokens("other", time.Hour)
	require.NoError(t, err)

	token, _, err := theirs.Issue("user-1")
	require.NoError(t, err)

	_, err = ours.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ours.Verify(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_VerifyRejectsOtherAlgorithms(t *testing.T) {
	tokens, err := NewTokens("secret", time.Hour)
	require.NoError(t, err)

	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = tokens.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_VerifyRequiresExpiry(t *testing.T) {
	tokens, err := NewTokens("secret", time.Hour)
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "user-1"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = tokens.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
