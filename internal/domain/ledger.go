package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Milk is a single milk purchase. Quantity is in milliliters and the price is per liter.
type Milk struct {
	ID            string
	UserID        string
	Quantity      decimal.Decimal
	PricePerLiter decimal.Decimal
	TotalPrice    decimal.Decimal
	Date          time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Expense is a generic named expense.
type Expense struct {
	ID          string
	UserID      string
	Name        string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Stock is a stock position, optionally closed by a sale.
type Stock struct {
	ID         string
	UserID     string
	Name       string
	Quantity   decimal.Decimal
	BuyPrice   decimal.Decimal
	SellPrice  decimal.NullDecimal
	BuyDate    time.Time
	SellDate   *time.Time
	ProfitLoss decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StockSale carries the sell-side fields that may change after a stock is recorded.
type StockSale struct {
	SellPrice  decimal.NullDecimal
	SellDate   *time.Time
	ProfitLoss decimal.Decimal
}

var thousand = decimal.NewFromInt(1000)

// MilkTotal converts a milliliter quantity priced per liter into a total price.
func MilkTotal(quantity, pricePerLiter decimal.Decimal) decimal.Decimal {
	return quantity.Mul(pricePerLiter).Div(thousand)
}

// Investment is the capital put into the position.
func (s Stock) Investment() decimal.Decimal {
	return s.BuyPrice.Mul(s.Quantity)
}

// StockProfitLoss is (sell - buy) * quantity once sold, zero otherwise.
func StockProfitLoss(buyPrice, quantity decimal.Decimal, sellPrice decimal.NullDecimal) decimal.Decimal {
	if !sellPrice.Valid {
		return decimal.Zero
	}
	return sellPrice.Decimal.Sub(buyPrice).Mul(quantity)
}
