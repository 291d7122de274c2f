package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"home-ledger/internal/domain"
	"home-ledger/internal/ledger"
	"home-ledger/internal/repository"
)

// DefaultMilkPrice is the per liter rate used when none is configured.
var DefaultMilkPrice = decimal.NewFromInt(45)

// MilkInput is the caller-editable part of a milk entry. Quantity is in milliliters.
type MilkInput struct {
	Quantity      *decimal.Decimal
	PricePerLiter *decimal.Decimal
	Date          string
}

// MilkListing is a filtered set of milk entries with its totals.
type MilkListing struct {
	Total         int
	TotalPriceSum decimal.Decimal
	Entries       []domain.Milk
}

// MilkService records milk purchases.
type MilkService interface {
	Create(ctx context.Context, caller ledger.Principal, in MilkInput) (*domain.Milk, error)
	List(ctx context.Context, caller ledger.Principal, dates ledger.DateRange) (MilkListing, error)
	Get(ctx context.Context, caller ledger.Principal, id string) (*domain.Milk, error)
	Update(ctx context.Context, caller ledger.Principal, id string, in MilkInput) (*domain.Milk, error)
	Delete(ctx context.Context, caller ledger.Principal, id string) error
}

type milkService struct {
	milk         repository.MilkRepository
	defaultPrice decimal.Decimal
}

func NewMilkService(milk repository.MilkRepository, defaultPrice decimal.Decimal) MilkService {
	if !defaultPrice.IsPositive() {
		defaultPrice = DefaultMilkPrice
	}
	return &milkService{
		milk:         milk,
		defaultPrice: defaultPrice,
	}
}

func milkTotalPrice(m domain.Milk) decimal.Decimal {
	return m.TotalPrice
}

// price resolves the per liter price and the derived total; the total is never taken from input.
func (s *milkService) price(in MilkInput) (decimal.Decimal, decimal.Decimal) {
	price := s.defaultPrice
	if in.PricePerLiter != nil && !in.PricePerLiter.IsZero() {
		price = *in.PricePerLiter
	}
	return price, domain.MilkTotal(*in.Quantity, price)
}

// dateTaken names the date when a conflict comes from the one-entry-per-date index.
func dateTaken(err error, date time.Time) error {
	if errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("%w: milk entry for %s", domain.ErrConflict, date.UTC().Format(time.RFC3339))
	}
	return err
}

func (s *milkService) Create(ctx context.Context, caller ledger.Principal, in MilkInput) (*domain.Milk, error) {
	var req required
	req.number("quantity", in.Quantity)
	if err := req.err(); err != nil {
		return nil, err
	}
	date, err := dateOr("milkInDate", in.Date, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	price, total := s.price(in)
	milk := &domain.Milk{
		ID:            uuid.NewString(),
		UserID:        caller.UserID,
		Quantity:      *in.Quantity,
		PricePerLiter: price,
		TotalPrice:    total,
		Date:          date,
	}
	if err := s.milk.Create(ctx, milk); err != nil {
		return nil, dateTaken(err, milk.Date)
	}
	return milk, nil
}

func (s *milkService) List(ctx context.Context, caller ledger.Principal, dates ledger.DateRange) (MilkListing, error) {
	entries, err := s.milk.FindMany(ctx, caller.Scope(dates))
	if err != nil {
		return MilkListing{}, err
	}
	listing := ledger.NewListing(entries, milkTotalPrice)
	return MilkListing{
		Total:         listing.Aggregate.Count,
		TotalPriceSum: listing.Sum(0),
		Entries:       listing.Entries,
	}, nil
}

func (s *milkService) Get(ctx context.Context, caller ledger.Principal, id string) (*domain.Milk, error) {
	if err := ownedID(id); err != nil {
		return nil, err
	}
	return s.milk.FindOne(ctx, id, caller.UserID)
}

func (s *milkService) Update(ctx context.Context, caller ledger.Principal, id string, in MilkInput) (*domain.Milk, error) {
	if err := ownedID(id); err != nil {
		return nil, err
	}
	var req required
	req.number("quantity", in.Quantity)
	if err := req.err(); err != nil {
		return nil, err
	}

	date, err := optionalDate("milkInDate", in.Date)
	if err != nil {
		return nil, err
	}

	current, err := s.milk.FindOne(ctx, id, caller.UserID)
	if err != nil {
		return nil, err
	}

	price, total := s.price(in)
	current.Quantity = *in.Quantity
	current.PricePerLiter = price
	current.TotalPrice = total
	if date != nil {
		current.Date = *date
	}
	if err := s.milk.Replace(ctx, current); err != nil {
		return nil, dateTaken(err, current.Date)
	}
	return current, nil
}

func (s *milkService) Delete(ctx context.Context, caller ledger.Principal, id string) error {
	if err := ownedID(id); err != nil {
		return err
	}
	return s.milk.Delete(ctx, id, caller.UserID)
}
