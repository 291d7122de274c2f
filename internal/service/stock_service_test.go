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

func newStockService(t *testing.T) service.StockService {
	return service.NewStockService(sqlite.NewStockRepository(newTestDB(t)))
}

func TestStockService_CreateComputesProfitLoss(t *testing.T) {
	svc := newStockService(t)
	ctx := context.Background()

	stock, err := svc.Create(ctx, alice, service.StockInput{
		Name:      "ACME",
		Quantity:  num("10"),
		BuyPrice:  num("100"),
		SellPrice: num("150"),
		BuyDate:   "2024-01-05",
		SellDate:  "2024-02-05",
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(stock.ProfitLoss))

	listing, err := svc.List(ctx, alice, ledger.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 1, listing.Total)
	assert.True(t, decimal.NewFromInt(1000).Equal(listing.TotalInvestment))
	assert.True(t, decimal.NewFromInt(500).Equal(listing.TotalProfitLoss))
}

func TestStockService_UnsoldHasZeroProfit(t *testing.T) {
	svc := newStockService(t)

	stock, err := svc.Create(context.Background(), alice, service.StockInput{
		Name:     "ACME",
		Quantity: num("10"),
		BuyPrice: num("100"),
		BuyDate:  "2024-01-05",
	})
	require.NoError(t, err)
	assert.False(t, stock.SellPrice.Valid)
	assert.Nil(t, stock.SellDate)
	assert.True(t, stock.ProfitLoss.IsZero())
}

func TestStockService_CreateValidation(t *testing.T) {
	svc := newStockService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, service.StockInput{Quantity: num("1")})
	var validation *domain.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, []string{"stockName", "buyPrice", "buyDate"}, validation.Fields)

	_, err = svc.Create(ctx, alice, service.StockInput{Name: "X", Quantity: num("1"), BuyPrice: num("1"), BuyDate: "soon"})
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, []string{"buyDate"}, validation.Fields)
}

func TestStockService_SellRecomputesAndKeepsBuySide(t *testing.T) {
	svc := newStockService(t)
	ctx := context.Background()

	stock, err := svc.Create(ctx, alice, service.StockInput{
		Name:     "ACME",
		Quantity: num("10"),
		BuyPrice: num("100"),
		BuyDate:  "2024-01-05",
	})
	require.NoError(t, err)

	sold, err := svc.Sell(ctx, alice, stock.ID, service.StockSaleInput{SellPrice: num("80"), SellDate: "2024-03-01"})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-200).Equal(sold.ProfitLoss))
	assert.True(t, decimal.NewFromInt(100).Equal(sold.BuyPrice))
	assert.True(t, decimal.NewFromInt(10).Equal(sold.Quantity))
	require.NotNil(t, sold.SellDate)

	// price only; the stored sell date stays
	sold, err = svc.Sell(ctx, alice, stock.ID, service.StockSaleInput{SellPrice: num("130")})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(sold.ProfitLoss))
	require.NotNil(t, sold.SellDate)
	assert.Equal(t, "2024-03-01", sold.SellDate.Format("2006-01-02"))

	_, err = svc.Sell(ctx, bob, stock.ID, service.StockSaleInput{SellPrice: num("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Sell(ctx, alice, stock.ID, service.StockSaleInput{SellDate: "garbage"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStockService_ListFiltersOnBuyDate(t *testing.T) {
	svc := newStockService(t)
	ctx := context.Background()

	for _, date := range []string{"2023-12-01", "2024-01-15"} {
		_, err := svc.Create(ctx, alice, service.StockInput{Name: "ACME", Quantity: num("2"), BuyPrice: num("10"), BuyDate: date})
		require.NoError(t, err)
	}

	listing, err := svc.List(ctx, alice, dates(t, "2024-01-01", "2024-12-31"))
	require.NoError(t, err)
	assert.Equal(t, 1, listing.Total)
	assert.True(t, decimal.NewFromInt(20).Equal(listing.TotalInvestment))

	empty, err := svc.List(ctx, bob, ledger.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Total)
	assert.True(t, empty.TotalInvestment.IsZero())
	assert.True(t, empty.TotalProfitLoss.IsZero())
}

func TestStockService_Delete(t *testing.T) {
	svc := newStockService(t)
	ctx := context.Background()

	stock, err := svc.Create(ctx, alice, service.StockInput{Name: "ACME", Quantity: num("2"), BuyPrice: num("10"), BuyDate: "2024-01-01"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, bob, stock.ID), domain.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, alice, stock.ID))
	assert.ErrorIs(t, svc.Delete(ctx, alice, stock.ID), domain.ErrNotFound)
}
