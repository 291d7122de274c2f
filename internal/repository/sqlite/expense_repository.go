package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"home-ledger/internal/domain"
	"home-ledger/internal/ledger"
	"home-ledger/internal/repository"
)

const expenseColumns = `id, user_id, expense_name, amount, description, expense_date, created_at, updated_at`

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) repository.ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	now := storedTime(time.Now())
	expense.CreatedAt = now
	expense.UpdatedAt = now
	expense.Date = storedTime(expense.Date)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO expenses (`+expenseColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID,
		expense.UserID,
		expense.Name,
		expense.Amount,
		expense.Description,
		toMillis(expense.Date),
		toMillis(expense.CreatedAt),
		toMillis(expense.UpdatedAt),
	)
	if err != nil {
		return classify("insert expense", err)
	}
	return nil
}

func (r *ExpenseRepository) FindMany(ctx context.Context, filter ledger.Filter) ([]domain.Expense, error) {
	where, args := scopeClause(filter, "expense_date")
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
SELECT %s
FROM expenses
%s
ORDER BY expense_date DESC, created_at DESC`, expenseColumns, where),
		args...,
	)
	if err != nil {
		return nil, domain.Upstream("list expenses", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Upstream("iterate expenses", err)
	}
	return expenses, nil
}

func (r *ExpenseRepository) FindOne(ctx context.Context, id, ownerID string) (*domain.Expense, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+expenseColumns+`
FROM expenses
WHERE id = ? AND user_id = ?`,
		id,
		ownerID,
	)
	return scanExpense(row)
}

func (r *ExpenseRepository) Replace(ctx context.Context, expense *domain.Expense) error {
	expense.UpdatedAt = storedTime(time.Now())
	expense.Date = storedTime(expense.Date)

	res, err := r.db.ExecContext(ctx, `
UPDATE expenses
SET expense_name = ?, amount = ?, description = ?, expense_date = ?, updated_at = ?
WHERE id = ? AND user_id = ?`,
		expense.Name,
		expense.Amount,
		expense.Description,
		toMillis(expense.Date),
		toMillis(expense.UpdatedAt),
		expense.ID,
		expense.UserID,
	)
	if err != nil {
		return classify("update expense", err)
	}
	return expectOne("update expense", res)
}

func (r *ExpenseRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return classify("delete expense", err)
	}
	return expectOne("delete expense", res)
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var (
		expense                domain.Expense
		date, created, updated int64
	)
	if err := row.Scan(
		&expense.ID,
		&expense.UserID,
		&expense.Name,
		&expense.Amount,
		&expense.Description,
		&date,
		&created,
		&updated,
	); err != nil {
		return nil, classify("scan expense", err)
	}
	expense.Date = fromMillis(date)
	expense.CreatedAt = fromMillis(created)
	expense.UpdatedAt = fromMillis(updated)
	return &expense, nil
}
