package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"home-ledger/internal/domain"
	"home-ledger/internal/ledger"
)

// required collects the names of absent required fields so they can be reported together.
type required struct {
	missing []string
}

// number treats absent and zero as missing.
func (r *required) number(field string, v *decimal.Decimal) {
	if v == nil || v.IsZero() {
		r.missing = append(r.missing, field)
	}
}

func (r *required) text(field, v string) {
	if strings.TrimSpace(v) == "" {
		r.missing = append(r.missing, field)
	}
}

func (r *required) date(field, v string) {
	if strings.TrimSpace(v) == "" {
		r.missing = append(r.missing, field)
	}
}

func (r *required) err() error {
	if len(r.missing) == 0 {
		return nil
	}
	return domain.MissingFields(r.missing...)
}

// dateOr parses raw when present and returns fallback otherwise.
func dateOr(field, raw string, fallback time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return ledger.ParseDate(field, raw)
}

// optionalDate parses raw when present and returns nil otherwise.
func optionalDate(field, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := ledger.ParseDate(field, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func ownedID(id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrNotFound
	}
	return nil
}
