package ledger

import (
	"strings"
	"time"

	"home-ledger/internal/domain"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate accepts RFC3339 timestamps and plain calendar dates. Values without a
// zone are read as UTC.
func ParseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.InvalidField(field, "invalid date format")
}

// DateRange is an optional inclusive lower and upper bound on an entry date.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// ParseDateRange parses the startDate/endDate query values. Empty means unbounded.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	if strings.TrimSpace(start) != "" {
		from, err := ParseDate("startDate", start)
		if err != nil {
			return DateRange{}, err
		}
		r.From = &from
	}
	if strings.TrimSpace(end) != "" {
		to, err := ParseDate("endDate", end)
		if err != nil {
			return DateRange{}, err
		}
		r.To = &to
	}
	return r, nil
}

// Contains reports whether t lies within both present bounds.
func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// Filter is a date range bound to an owner. Only Principal.Scope builds one.
type Filter struct {
	owner string
	dates DateRange
}

func (f Filter) Owner() string {
	return f.owner
}

func (f Filter) Dates() DateRange {
	return f.dates
}

// Match is the in-memory form of the predicate the repositories run in SQL.
func (f Filter) Match(owner string, date time.Time) bool {
	return f.owner != "" && owner == f.owner && f.dates.Contains(date)
}
