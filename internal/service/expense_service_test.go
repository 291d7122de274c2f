package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-ledger/internal/domain"
	"home-ledger/internal/ledger"
	"home-ledger/internal/repository/sqlite"
	"home-ledger/internal/service"
)

func newExpenseService(t *testing.T) service.ExpenseService {
	return service.NewExpenseService(sqlite.NewExpenseRepository(newTestDB(t)))
}

func TestExpenseService_MissingFieldsReportedTogether(t *testing.T) {
	svc := newExpenseService(t)

	_, err := svc.Create(context.Background(), alice, service.ExpenseInput{Name: "  ", Amount: num("0")})

	var validation *domain.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, []string{"expenseName", "amount", "description"}, validation.Fields)
}

func TestExpenseService_RangeAfterAllEntriesIsEmpty(t *testing.T) {
	svc := newExpenseService(t)
	ctx := context.Background()

	for _, date := range []string{"2024-01-02", "2024-01-09"} {
		_, err := svc.Create(ctx, alice, service.ExpenseInput{
			Name:        "Fuel",
			Amount:      num("40.25"),
			Description: "car",
			Date:        date,
		})
		require.NoError(t, err)
	}

	listing, err := svc.List(ctx, alice, dates(t, "2025-01-01", ""))
	require.NoError(t, err)
	assert.Equal(t, 0, listing.Total)
	assert.True(t, listing.TotalAmount.IsZero())
	assert.NotNil(t, listing.Expenses)
	assert.Empty(t, listing.Expenses)

	listing, err = svc.List(ctx, alice, ledger.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 2, listing.Total)
	assert.True(t, decimal.RequireFromString("80.5").Equal(listing.TotalAmount))
	assert.Equal(t, "2024-01-09", listing.Expenses[0].Date.Format("2006-01-02"))
}

func TestExpenseService_UpdateAndDelete(t *testing.T) {
	svc := newExpenseService(t)
	ctx := context.Background()

	expense, err := svc.Create(ctx, alice, service.ExpenseInput{Name: "Rent", Amount: num("800"), Description: "march"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, alice, expense.ID, service.ExpenseInput{
		Name:        "Rent",
		Amount:      num("850"),
		Description: "march, adjusted",
		Date:        "2024-03-01",
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(850).Equal(updated.Amount))
	assert.Equal(t, "2024-03-01", updated.Date.Format("2006-01-02"))
	assert.Equal(t, alice.UserID, updated.UserID)

	_, err = svc.Update(ctx, bob, expense.ID, service.ExpenseInput{Name: "x", Amount: num("1"), Description: "y"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(ctx, bob, expense.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, alice, expense.ID))
	assert.ErrorIs(t, svc.Delete(ctx, alice, expense.ID), domain.ErrNotFound)
}
