package ledger_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-ledger/internal/domain"
	"home-ledger/internal/ledger"
)

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := ledger.ParseDate("date", raw)
	require.NoError(t, err)
	return d
}

func TestParseDate_Layouts(t *testing.T) {
	want := time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC)

	tests := map[string]time.Time{
		"2024-03-05T10:30:00Z":      want,
		"2024-03-05T10:30:00.000Z":  want,
		"2024-03-05T12:30:00+02:00": want,
		"2024-03-05T10:30:00":       want,
		"2024-03-05 10:30:00":       want,
		"2024-03-05":                time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		"  2024-03-05T10:30:00Z  ":  want,
	}
	for raw, expected := range tests {
		got, err := ledger.ParseDate("date", raw)
		require.NoError(t, err, raw)
		assert.True(t, expected.Equal(got), "%s parsed as %s", raw, got)
		assert.Equal(t, time.UTC, got.Location())
	}
}

func TestParseDate_InvalidNamesField(t *testing.T) {
	_, err := ledger.ParseDate("milkInDate", "not-a-date")

	var validation *domain.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, []string{"milkInDate"}, validation.Fields)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseDateRange(t *testing.T) {
	r, err := ledger.ParseDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, r.From)
	assert.Nil(t, r.To)

	r, err = ledger.ParseDateRange("2024-01-01", "")
	require.NoError(t, err)
	require.NotNil(t, r.From)
	assert.Nil(t, r.To)

	r, err = ledger.ParseDateRange("", "2024-01-31")
	require.NoError(t, err)
	assert.Nil(t, r.From)
	require.NotNil(t, r.To)
}

func TestParseDateRange_StartCheckedFirst(t *testing.T) {
	_, err := ledger.ParseDateRange("garbage", "also garbage")
	var validation *domain.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, []string{"startDate"}, validation.Fields)

	_, err = ledger.ParseDateRange("2024-01-01", "garbage")
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, []string{"endDate"}, validation.Fields)
}

func TestDateRange_ContainsIsInclusive(t *testing.T) {
	r, err := ledger.ParseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	assert.True(t, r.Contains(mustDate(t, "2024-01-01")))
	assert.True(t, r.Contains(mustDate(t, "2024-01-31")))
	assert.True(t, r.Contains(mustDate(t, "2024-01-15T08:00:00Z")))
	assert.False(t, r.Contains(mustDate(t, "2023-12-31T23:59:59Z")))
	assert.False(t, r.Contains(mustDate(t, "2024-01-31T00:00:01Z")))
}

func TestDateRange_InvertedMatchesNothing(t *testing.T) {
	r, err := ledger.ParseDateRange("2024-02-01", "2024-01-01")
	require.NoError(t, err)

	for _, d := range []string{"2023-12-01", "2024-01-01", "2024-01-15", "2024-02-01", "2024-03-01"} {
		assert.False(t, r.Contains(mustDate(t, d)), d)
	}
}

func TestFilter_Match(t *testing.T) {
	r, err := ledger.ParseDateRange("2024-01-01", "")
	require.NoError(t, err)
	filter := ledger.Principal{UserID: "user-a"}.Scope(r)

	assert.True(t, filter.Match("user-a", mustDate(t, "2024-06-01")))
	assert.False(t, filter.Match("user-b", mustDate(t, "2024-06-01")))
	assert.False(t, filter.Match("user-a", mustDate(t, "2023-06-01")))
}
