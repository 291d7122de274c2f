package ledger

import "github.com/shopspring/decimal"

// Measure extracts the value summed for one aggregate column.
type Measure[T any] func(T) decimal.Decimal

// Aggregate holds the entry count and one sum per measure, in measure order.
type Aggregate struct {
	Count int
	Sums  []decimal.Decimal
}

// Summarize folds exactly the given entries. Callers pass the same slice they
// return so totals reconcile with the listing.
func Summarize[T any](entries []T, measures ...Measure[T]) Aggregate {
	agg := Aggregate{
		Count: len(entries),
		Sums:  make([]decimal.Decimal, len(measures)),
	}
	for i := range agg.Sums {
		agg.Sums[i] = decimal.Zero
	}
	for _, entry := range entries {
		for i, measure := range measures {
			agg.Sums[i] = agg.Sums[i].Add(measure(entry))
		}
	}
	return agg
}

// Listing is a filtered set of entries together with its totals.
type Listing[T any] struct {
	Entries   []T
	Aggregate Aggregate
}

func NewListing[T any](entries []T, measures ...Measure[T]) Listing[T] {
	if entries == nil {
		entries = []T{}
	}
	return Listing[T]{
		Entries:   entries,
		Aggregate: Summarize(entries, measures...),
	}
}

// Sum returns the i-th measure total.
func (l Listing[T]) Sum(i int) decimal.Decimal {
	if i < 0 || i >= len(l.Aggregate.Sums) {
		return decimal.Zero
	}
	return l.Aggregate.Sums[i]
}
