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

const milkColumns = `id, user_id, quantity, price_per_liter, total_price, milk_date, created_at, updated_at`

type MilkRepository struct {
	db *sql.DB
}

func NewMilkRepository(db *sql.DB) repository.MilkRepository {
	return &MilkRepository{db: db}
}

func (r *MilkRepository) Create(ctx context.Context, milk *domain.Milk) error {
	now := storedTime(time.Now())
	milk.CreatedAt = now
	milk.UpdatedAt = now
	milk.Date = storedTime(milk.Date)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO milk_entries (`+milkColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		milk.ID,
		milk.UserID,
		milk.Quantity,
		milk.PricePerLiter,
		milk.TotalPrice,
		toMillis(milk.Date),
		toMillis(milk.CreatedAt),
		toMillis(milk.UpdatedAt),
	)
	if err != nil {
		return classify("insert milk entry", err)
	}
	return nil
}

func (r *MilkRepository) FindMany(ctx context.Context, filter ledger.Filter) ([]domain.Milk, error) {
	where, args := scopeClause(filter, "milk_date")
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
SELECT %s
FROM milk_entries
%s
ORDER BY milk_date DESC, created_at DESC`, milkColumns, where),
		args...,
	)
	if err != nil {
		return nil, domain.Upstream("list milk entries", err)
	}
	defer rows.Close()

	var entries []domain.Milk
	for rows.Next() {
		milk, err := scanMilk(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *milk)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Upstream("iterate milk entries", err)
	}
	return entries, nil
}

func (r *MilkRepository) FindOne(ctx context.Context, id, ownerID string) (*domain.Milk, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+milkColumns+`
FROM milk_entries
WHERE id = ? AND user_id = ?`,
		id,
		ownerID,
	)
	return scanMilk(row)
}

func (r *MilkRepository) Replace(ctx context.Context, milk *domain.Milk) error {
	milk.UpdatedAt = storedTime(time.Now())
	milk.Date = storedTime(milk.Date)

	res, err := r.db.ExecContext(ctx, `
UPDATE milk_entries
SET quantity = ?, price_per_liter = ?, total_price = ?, milk_date = ?, updated_at = ?
WHERE id = ? AND user_id = ?`,
		milk.Quantity,
		milk.PricePerLiter,
		milk.TotalPrice,
		toMillis(milk.Date),
		toMillis(milk.UpdatedAt),
		milk.ID,
		milk.UserID,
	)
	if err != nil {
		return classify("update milk entry", err)
	}
	return expectOne("update milk entry", res)
}

func (r *MilkRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM milk_entries WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return classify("delete milk entry", err)
	}
	return expectOne("delete milk entry", res)
}

func scanMilk(row rowScanner) (*domain.Milk, error) {
	var (
		milk                   domain.Milk
		date, created, updated int64
	)
	if err := row.Scan(
		&milk.ID,
		&milk.UserID,
		&milk.Quantity,
		&milk.PricePerLiter,
		&milk.TotalPrice,
		&date,
		&created,
		&updated,
	); err != nil {
		return nil, classify("scan milk entry", err)
	}
	milk.Date = fromMillis(date)
	milk.CreatedAt = fromMillis(created)
	milk.UpdatedAt = fromMillis(updated)
	return &milk, nil
}
