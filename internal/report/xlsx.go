// Package report renders ledger listings as spreadsheets.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"home-ledger/internal/service"
)

const dateFormat = "2006-01-02 15:04"

// Workbook is a single-sheet export ready to be written out.
type Workbook struct {
	file  *excelize.File
	sheet string
	row   int
}

func newWorkbook(sheet string, headings ...string) (*Workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("name sheet: %w", err)
	}
	w := &Workbook{file: f, sheet: sheet, row: 1}
	values := make([]any, len(headings))
	for i, h := range headings {
		values[i] = h
	}
	if err := w.append(values...); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

func (w *Workbook) append(values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err := w.file.SetSheetRow(w.sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", w.row, err)
	}
	w.row++
	return nil
}

// WriteTo renders the workbook as xlsx, copies it to out and releases it.
func (w *Workbook) WriteTo(out io.Writer) (int64, error) {
	defer w.file.Close()
	buf, err := w.file.WriteToBuffer()
	if err != nil {
		return 0, fmt.Errorf("render workbook: %w", err)
	}
	return buf.WriteTo(out)
}

// Rows is the number of written rows including the heading and totals.
func (w *Workbook) Rows() int {
	return w.row - 1
}

// Cell reads back a value, mainly for inspection in tests.
func (w *Workbook) Cell(col, row int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	return w.file.GetCellValue(w.sheet, cell)
}

func num(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func date(t time.Time) string {
	return t.UTC().Format(dateFormat)
}

func optionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return date(*t)
}

// Milk exports a milk listing with a closing totals row.
func Milk(l service.MilkListing) (*Workbook, error) {
	w, err := newWorkbook("Milk", "Date", "Quantity (ml)", "Price per liter", "Total price")
	if err != nil {
		return nil, err
	}
	for _, m := range l.Entries {
		if err := w.append(date(m.Date), num(m.Quantity), num(m.PricePerLiter), num(m.TotalPrice)); err != nil {
			return nil, err
		}
	}
	if err := w.append(fmt.Sprintf("Total (%d)", l.Total), nil, nil, num(l.TotalPriceSum)); err != nil {
		return nil, err
	}
	return w, nil
}

// Expenses exports an expense listing with a closing totals row.
func Expenses(l service.ExpenseListing) (*Workbook, error) {
	w, err := newWorkbook("Expenses", "Date", "Name", "Description", "Amount")
	if err != nil {
		return nil, err
	}
	for _, e := range l.Expenses {
		if err := w.append(date(e.Date), e.Name, e.Description, num(e.Amount)); err != nil {
			return nil, err
		}
	}
	if err := w.append(fmt.Sprintf("Total (%d)", l.Total), nil, nil, num(l.TotalAmount)); err != nil {
		return nil, err
	}
	return w, nil
}

// Stocks exports a stock listing with a closing totals row.
func Stocks(l service.StockListing) (*Workbook, error) {
	w, err := newWorkbook("Stocks", "Buy date", "Stock", "Quantity", "Buy price", "Sell price", "Sell date", "Investment", "Profit/Loss")
	if err != nil {
		return nil, err
	}
	for _, s := range l.Stocks {
		var sell any
		if s.SellPrice.Valid {
			sell = num(s.SellPrice.Decimal)
		}
		if err := w.append(
			date(s.BuyDate),
			s.Name,
			num(s.Quantity),
			num(s.BuyPrice),
			sell,
			optionalDate(s.SellDate),
			num(s.Investment()),
			num(s.ProfitLoss),
		); err != nil {
			return nil, err
		}
	}
	if err := w.append(fmt.Sprintf("Total (%d)", l.Total), nil, nil, nil, nil, nil, num(l.TotalInvestment), num(l.TotalProfitLoss)); err != nil {
		return nil, err
	}
	return w, nil
}
