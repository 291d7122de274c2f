// Package ledger holds the rules shared by every ledger variant: who may see an
// entry, which dates a listing covers and how its totals are computed.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"home-ledger/internal/domain"
)

// TokenVerifier turns a bearer credential into the user id it was issued for.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Principal is the verified identity of the caller.
type Principal struct {
	UserID string
}

// Authorize permits the operation iff ownerID is the caller.
func (p Principal) Authorize(ownerID string) error {
	if p.UserID == "" || p.UserID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}

// Scope restricts a date range to the caller's own entries.
func (p Principal) Scope(r DateRange) Filter {
	return Filter{owner: p.UserID, dates: r}
}

// Guard authenticates callers from their Authorization header.
type Guard struct {
	verifier TokenVerifier
}

func NewGuard(verifier TokenVerifier) *Guard {
	return &Guard{verifier: verifier}
}

// Authenticate expects "Bearer <token>".
func (g *Guard) Authenticate(ctx context.Context, authorization string) (Principal, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return Principal{}, domain.ErrUnauthenticated
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return Principal{}, domain.ErrUnauthenticated
	}

	userID, err := g.verifier.Verify(ctx, token)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if userID == "" {
		return Principal{}, domain.ErrUnauthenticated
	}
	return Principal{UserID: userID}, nil
}
