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

const stockColumns = `id, user_id, stock_name, quantity, buy_price, sell_price, buy_date, sell_date, profit_loss, created_at, updated_at`

type StockRepository struct {
	db *sql.DB
}

func NewStockRepository(db *sql.DB) repository.StockRepository {
	return &StockRepository{db: db}
}

func (r *StockRepository) Create(ctx context.Context, stock *domain.Stock) error {
	now := storedTime(time.Now())
	stock.CreatedAt = now
	stock.UpdatedAt = now
	stock.BuyDate = storedTime(stock.BuyDate)
	if stock.SellDate != nil {
		sold := storedTime(*stock.SellDate)
		stock.SellDate = &sold
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO stocks (`+stockColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stock.ID,
		stock.UserID,
		stock.Name,
		stock.Quantity,
		stock.BuyPrice,
		stock.SellPrice,
		toMillis(stock.BuyDate),
		nullMillis(stock.SellDate),
		stock.ProfitLoss,
		toMillis(stock.CreatedAt),
		toMillis(stock.UpdatedAt),
	)
	if err != nil {
		return classify("insert stock", err)
	}
	return nil
}

func (r *StockRepository) FindMany(ctx context.Context, filter ledger.Filter) ([]domain.Stock, error) {
	where, args := scopeClause(filter, "buy_date")
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
SELECT %s
FROM stocks
%s
ORDER BY buy_date DESC, created_at DESC`, stockColumns, where),
		args...,
	)
	if err != nil {
		return nil, domain.Upstream("list stocks", err)
	}
	defer rows.Close()

	var stocks []domain.Stock
	for rows.Next() {
		stock, err := scanStock(rows)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, *stock)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Upstream("iterate stocks", err)
	}
	return stocks, nil
}

func (r *StockRepository) FindOne(ctx context.Context, id, ownerID string) (*domain.Stock, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+stockColumns+`
FROM stocks
WHERE id = ? AND user_id = ?`,
		id,
		ownerID,
	)
	return scanStock(row)
}

// ApplySale writes only the sell-side columns; buy-side columns are never part of the statement.
func (r *StockRepository) ApplySale(ctx context.Context, id, ownerID string, sale domain.StockSale) (*domain.Stock, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE stocks
SET sell_price = ?, sell_date = ?, profit_loss = ?, updated_at = ?
WHERE id = ? AND user_id = ?`,
		sale.SellPrice,
		nullMillis(sale.SellDate),
		sale.ProfitLoss,
		toMillis(time.Now()),
		id,
		ownerID,
	)
	if err != nil {
		return nil, classify("update stock sale", err)
	}
	if err := expectOne("update stock sale", res); err != nil {
		return nil, err
	}
	return r.FindOne(ctx, id, ownerID)
}

func (r *StockRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stocks WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return classify("delete stock", err)
	}
	return expectOne("delete stock", res)
}

func scanStock(row rowScanner) (*domain.Stock, error) {
	var (
		stock                     domain.Stock
		buyDate, created, updated int64
		sellDate                  sql.NullInt64
	)
	if err := row.Scan(
		&stock.ID,
		&stock.UserID,
		&stock.Name,
		&stock.Quantity,
		&stock.BuyPrice,
		&stock.SellPrice,
		&buyDate,
		&sellDate,
		&stock.ProfitLoss,
		&created,
		&updated,
	); err != nil {
		return nil, classify("scan stock", err)
	}
	stock.BuyDate = fromMillis(buyDate)
	if sellDate.Valid {
		sold := fromMillis(sellDate.Int64)
		stock.SellDate = &sold
	}
	stock.CreatedAt = fromMillis(created)
	stock.UpdatedAt = fromMillis(updated)
	return &stock, nil
}
