package sqlite

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"home-ledger/internal/domain"
	"home-ledger/internal/ledger"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

// ceilMillis rounds up so a sub-millisecond lower bound never admits the millisecond before it.
func ceilMillis(t time.Time) int64 {
	ms := t.UnixMilli()
	if t.After(time.UnixMilli(ms)) {
		ms++
	}
	return ms
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// storedTime is t at the precision it will have after a round trip.
func storedTime(t time.Time) time.Time {
	return fromMillis(toMillis(t))
}

func nullMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMillis(*t), Valid: true}
}

// scopeClause renders a ledger filter as a WHERE clause on the given date column.
func scopeClause(filter ledger.Filter, dateColumn string) (string, []any) {
	clauses := []string{"user_id = ?"}
	args := []any{filter.Owner()}

	dates := filter.Dates()
	if dates.From != nil {
		clauses = append(clauses, dateColumn+" >= ?")
		args = append(args, ceilMillis(*dates.From))
	}
	if dates.To != nil {
		clauses = append(clauses, dateColumn+" <= ?")
		args = append(args, toMillis(*dates.To))
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}

// classify maps driver errors onto the domain taxonomy.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrNotFound
	case isUniqueViolation(err):
		return domain.ErrConflict
	default:
		return domain.Upstream(op, err)
	}
}

// expectOne turns a zero-row write into ErrNotFound.
func expectOne(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Upstream(op, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
