package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-ledger/internal/domain"
	"home-ledger/internal/ledger"
)

type stubVerifier map[string]string

func (s stubVerifier) Verify(_ context.Context, token string) (string, error) {
	id, ok := s[token]
	if !ok {
		return "", errors.New("token expired")
	}
	return id, nil
}

func TestGuard_Authenticate(t *testing.T) {
	guard := ledger.NewGuard(stubVerifier{"good": "user-a", "blank": ""})
	ctx := context.Background()

	p, err := guard.Authenticate(ctx, "Bearer good")
	require.NoError(t, err)
	assert.Equal(t, "user-a", p.UserID)

	p, err = guard.Authenticate(ctx, "bearer   good ")
	require.NoError(t, err)
	assert.Equal(t, "user-a", p.UserID)

	for _, header := range []string{"", "good", "Basic good", "Bearer", "Bearer ", "Bearer bad", "Bearer blank"} {
		_, err := guard.Authenticate(ctx, header)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated, "header %q", header)
	}
}

func TestPrincipal_Authorize(t *testing.T) {
	caller := ledger.Principal{UserID: "user-a"}

	assert.NoError(t, caller.Authorize("user-a"))
	assert.ErrorIs(t, caller.Authorize("user-b"), domain.ErrForbidden)
	assert.ErrorIs(t, caller.Authorize(""), domain.ErrForbidden)
	assert.ErrorIs(t, ledger.Principal{}.Authorize(""), domain.ErrForbidden)
}

func TestPrincipal_ScopeBindsOwner(t *testing.T) {
	filter := ledger.Principal{UserID: "user-a"}.Scope(ledger.DateRange{})

	assert.Equal(t, "user-a", filter.Owner())
	assert.Nil(t, filter.Dates().From)
	assert.Nil(t, filter.Dates().To)

	var zero ledger.Filter
	assert.False(t, zero.Match("", mustDate(t, "2024-01-01")))
}
