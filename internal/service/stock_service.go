package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"home-ledger/internal/domain"
	"home-ledger/internal/ledger"
	"home-ledger/internal/repository"
)

// StockInput records a purchase, optionally already sold.
type StockInput struct {
	Name      string
	Quantity  *decimal.Decimal
	BuyPrice  *decimal.Decimal
	SellPrice *decimal.Decimal
	BuyDate   string
	SellDate  string
}

// StockSaleInput holds the only fields a stock patch may change.
type StockSaleInput struct {
	SellPrice *decimal.Decimal
	SellDate  string
}

// StockListing is a filtered set of stocks with its totals.
type StockListing struct {
	Total           int
	TotalInvestment decimal.Decimal
	TotalProfitLoss decimal.Decimal
	Stocks          []domain.Stock
}

// StockService records stock trades.
type StockService interface {
	Create(ctx context.Context, caller ledger.Principal, in StockInput) (*domain.Stock, error)
	List(ctx context.Context, caller ledger.Principal, dates ledger.DateRange) (StockListing, error)
	Get(ctx context.Context, caller ledger.Principal, id string) (*domain.Stock, error)
	Sell(ctx context.Context, caller ledger.Principal, id string, in StockSaleInput) (*domain.Stock, error)
	Delete(ctx context.Context, caller ledger.Principal, id string) error
}

type stockService struct {
	stocks repository.StockRepository
}

func NewStockService(stocks repository.StockRepository) StockService {
	return &stockService{stocks: stocks}
}

func stockInvestment(s domain.Stock) decimal.Decimal {
	return s.Investment()
}

func stockProfitLoss(s domain.Stock) decimal.Decimal {
	return s.ProfitLoss
}

// sellPrice maps an absent or zero price to "not sold".
func sellPrice(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil || v.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*v)
}

func (s *stockService) Create(ctx context.Context, caller ledger.Principal, in StockInput) (*domain.Stock, error) {
	var req required
	req.text("stockName", in.Name)
	req.number("buyPrice", in.BuyPrice)
	req.number("quantity", in.Quantity)
	req.date("buyDate", in.BuyDate)
	if err := req.err(); err != nil {
		return nil, err
	}

	buyDate, err := ledger.ParseDate("buyDate", in.BuyDate)
	if err != nil {
		return nil, err
	}
	sellDate, err := optionalDate("sellDate", in.SellDate)
	if err != nil {
		return nil, err
	}

	sold := sellPrice(in.SellPrice)
	stock := &domain.Stock{
		ID:         uuid.NewString(),
		UserID:     caller.UserID,
		Name:       in.Name,
		Quantity:   *in.Quantity,
		BuyPrice:   *in.BuyPrice,
		SellPrice:  sold,
		BuyDate:    buyDate,
		SellDate:   sellDate,
		ProfitLoss: domain.StockProfitLoss(*in.BuyPrice, *in.Quantity, sold),
	}
	if err := s.stocks.Create(ctx, stock); err != nil {
		return nil, err
	}
	return stock, nil
}

func (s *stockService) List(ctx context.Context, caller ledger.Principal, dates ledger.DateRange) (StockListing, error) {
	stocks, err := s.stocks.FindMany(ctx, caller.Scope(dates))
	if err != nil {
		return StockListing{}, err
	}
	listing := ledger.NewListing(stocks, stockInvestment, stockProfitLoss)
	return StockListing{
		Total:           listing.Aggregate.Count,
		TotalInvestment: listing.Sum(0),
		TotalProfitLoss: listing.Sum(1),
		Stocks:          listing.Entries,
	}, nil
}

func (s *stockService) Get(ctx context.Context, caller ledger.Principal, id string) (*domain.Stock, error) {
	if err := ownedID(id); err != nil {
		return nil, err
	}
	return s.stocks.FindOne(ctx, id, caller.UserID)
}

// Sell updates the sell side. Fields left out of the input keep their stored value.
func (s *stockService) Sell(ctx context.Context, caller ledger.Principal, id string, in StockSaleInput) (*domain.Stock, error) {
	if err := ownedID(id); err != nil {
		return nil, err
	}
	sellDate, err := optionalDate("sellDate", in.SellDate)
	if err != nil {
		return nil, err
	}

	current, err := s.stocks.FindOne(ctx, id, caller.UserID)
	if err != nil {
		return nil, err
	}

	sale := domain.StockSale{
		SellPrice: current.SellPrice,
		SellDate:  current.SellDate,
	}
	if in.SellPrice != nil {
		sale.SellPrice = sellPrice(in.SellPrice)
	}
	if sellDate != nil {
		sale.SellDate = sellDate
	}
	sale.ProfitLoss = domain.StockProfitLoss(current.BuyPrice, current.Quantity, sale.SellPrice)

	return s.stocks.ApplySale(ctx, id, caller.UserID, sale)
}

func (s *stockService) Delete(ctx context.Context, caller ledger.Principal, id string) error {
	if err := ownedID(id); err != nil {
		return err
	}
	return s.stocks.Delete(ctx, id, caller.UserID)
}
