package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"home-ledger/internal/domain"
	"home-ledger/internal/ledger"
	"home-ledger/internal/repository"
)

// ExpenseInput is the caller-editable part of an expense.
type ExpenseInput struct {
	Name        string
	Amount      *decimal.Decimal
	Description string
	Date        string
}

// ExpenseListing is a filtered set of expenses with its totals.
type ExpenseListing struct {
	Total       int
	TotalAmount decimal.Decimal
	Expenses    []domain.Expense
}

// ExpenseService records generic expenses.
type ExpenseService interface {
	Create(ctx context.Context, caller ledger.Principal, in ExpenseInput) (*domain.Expense, error)
	List(ctx context.Context, caller ledger.Principal, dates ledger.DateRange) (ExpenseListing, error)
	Get(ctx context.Context, caller ledger.Principal, id string) (*domain.Expense, error)
	Update(ctx context.Context, caller ledger.Principal, id string, in ExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, caller ledger.Principal, id string) error
}

type expenseService struct {
	expenses repository.ExpenseRepository
}

func NewExpenseService(expenses repository.ExpenseRepository) ExpenseService {
	return &expenseService{expenses: expenses}
}

func expenseAmount(e domain.Expense) decimal.Decimal {
	return e.Amount
}

func (in ExpenseInput) check() error {
	var req required
	req.text("expenseName", in.Name)
	req.number("amount", in.Amount)
	req.text("description", in.Description)
	return req.err()
}

func (s *expenseService) Create(ctx context.Context, caller ledger.Principal, in ExpenseInput) (*domain.Expense, error) {
	if err := in.check(); err != nil {
		return nil, err
	}
	date, err := dateOr("expenseDate", in.Date, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		ID:          uuid.NewString(),
		UserID:      caller.UserID,
		Name:        in.Name,
		Amount:      *in.Amount,
		Description: in.Description,
		Date:        date,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) List(ctx context.Context, caller ledger.Principal, dates ledger.DateRange) (ExpenseListing, error) {
	expenses, err := s.expenses.FindMany(ctx, caller.Scope(dates))
	if err != nil {
		return ExpenseListing{}, err
	}
	listing := ledger.NewListing(expenses, expenseAmount)
	return ExpenseListing{
		Total:       listing.Aggregate.Count,
		TotalAmount: listing.Sum(0),
		Expenses:    listing.Entries,
	}, nil
}

func (s *expenseService) Get(ctx context.Context, caller ledger.Principal, id string) (*domain.Expense, error) {
	if err := ownedID(id); err != nil {
		return nil, err
	}
	return s.expenses.FindOne(ctx, id, caller.UserID)
}

func (s *expenseService) Update(ctx context.Context, caller ledger.Principal, id string, in ExpenseInput) (*domain.Expense, error) {
	if err := ownedID(id); err != nil {
		return nil, err
	}
	if err := in.check(); err != nil {
		return nil, err
	}
	date, err := optionalDate("expenseDate", in.Date)
	if err != nil {
		return nil, err
	}

	current, err := s.expenses.FindOne(ctx, id, caller.UserID)
	if err != nil {
		return nil, err
	}
	current.Name = in.Name
	current.Amount = *in.Amount
	current.Description = in.Description
	if date != nil {
		current.Date = *date
	}
	if err := s.expenses.Replace(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *expenseService) Delete(ctx context.Context, caller ledger.Principal, id string) error {
	if err := ownedID(id); err != nil {
		return err
	}
	return s.expenses.Delete(ctx, id, caller.UserID)
}
