package http

import "github.com/shopspring/decimal"

// Amount is a decimal rendered as a bare JSON number regardless of
// decimal.MarshalJSONWithoutQuotes.
type Amount decimal.Decimal

func (a Amount) Decimal() decimal.Decimal {
	return decimal.Decimal(a)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).String()), nil
}

// UnmarshalJSON accepts both numbers and quoted strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = Amount(d)
	return nil
}
