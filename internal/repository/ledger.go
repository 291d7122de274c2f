package repository

import (
	"context"

	"home-ledger/internal/domain"
	"home-ledger/internal/ledger"
)

// Every lookup takes the owner id alongside the entry id; an entry owned by
// someone else is reported as domain.ErrNotFound. FindMany returns entries
// newest first by entry date.

// MilkRepository persists milk entries.
type MilkRepository interface {
	Create(ctx context.Context, milk *domain.Milk) error
	FindMany(ctx context.Context, filter ledger.Filter) ([]domain.Milk, error)
	FindOne(ctx context.Context, id, ownerID string) (*domain.Milk, error)
	Replace(ctx context.Context, milk *domain.Milk) error
	Delete(ctx context.Context, id, ownerID string) error
}

// ExpenseRepository persists expense entries.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	FindMany(ctx context.Context, filter ledger.Filter) ([]domain.Expense, error)
	FindOne(ctx context.Context, id, ownerID string) (*domain.Expense, error)
	Replace(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id, ownerID string) error
}

// StockRepository persists stock entries. Only the sell side can change once recorded.
type StockRepository interface {
	Create(ctx context.Context, stock *domain.Stock) error
	FindMany(ctx context.Context, filter ledger.Filter) ([]domain.Stock, error)
	FindOne(ctx context.Context, id, ownerID string) (*domain.Stock, error)
	ApplySale(ctx context.Context, id, ownerID string, sale domain.StockSale) (*domain.Stock, error)
	Delete(ctx context.Context, id, ownerID string) error
}
