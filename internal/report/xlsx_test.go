package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"home-ledger/internal/domain"
	"home-ledger/internal/service"
)

func TestMilk_TotalsRowMatchesListing(t *testing.T) {
	listing := service.MilkListing{
		Total:         2,
		TotalPriceSum: decimal.NewFromInt(135),
		Entries: []domain.Milk{
			{Quantity: decimal.NewFromInt(2000), PricePerLiter: decimal.NewFromInt(45), TotalPrice: decimal.NewFromInt(90), Date: time.Date(2024, 2, 1, 7, 0, 0, 0, time.UTC)},
			{Quantity: decimal.NewFromInt(1000), PricePerLiter: decimal.NewFromInt(45), TotalPrice: decimal.NewFromInt(45), Date: time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC)},
		},
	}

	wb, err := Milk(listing)
	require.NoError(t, err)
	assert.Equal(t, 4, wb.Rows())

	heading, err := wb.Cell(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Date", heading)

	first, err := wb.Cell(1, 2)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01 07:00", first)

	label, err := wb.Cell(1, 4)
	require.NoError(t, err)
	assert.Equal(t, "Total (2)", label)

	total, err := wb.Cell(4, 4)
	require.NoError(t, err)
	assert.Equal(t, "135", total)
}

func TestStocks_UnsoldLeavesSellColumnsEmpty(t *testing.T) {
	listing := service.StockListing{
		Total:           1,
		TotalInvestment: decimal.NewFromInt(1000),
		TotalProfitLoss: decimal.Zero,
		Stocks: []domain.Stock{{
			Name:     "ACME",
			Quantity: decimal.NewFromInt(10),
			BuyPrice: decimal.NewFromInt(100),
			BuyDate:  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		}},
	}

	wb, err := Stocks(listing)
	require.NoError(t, err)

	sell, err := wb.Cell(5, 2)
	require.NoError(t, err)
	assert.Empty(t, sell)

	investment, err := wb.Cell(7, 2)
	require.NoError(t, err)
	assert.Equal(t, "1000", investment)
}

func TestWorkbook_WriteToProducesReadableFile(t *testing.T) {
	wb, err := Expenses(service.ExpenseListing{Total: 0, TotalAmount: decimal.Zero})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := wb.WriteTo(&buf)
	require.NoError(t, err)
	assert.Positive(t, n)
	assert.Equal(t, int64(buf.Len()), n)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Expenses")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Date", "Name", "Description", "Amount"}, rows[0])
	assert.Equal(t, "Total (0)", rows[1][0])
}
