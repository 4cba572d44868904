package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday 2026-02-11 14:30 shop time.
var wednesday = time.Date(2026, 2, 11, 14, 30, 0, 0, ShopTZ)

func TestResolveRangeToday(t *testing.T) {
	dr, err := ResolveRange(FilterToday, "", "", wednesday)
	require.NoError(t, err)

	assert.True(t, dr.Bounded)
	assert.Equal(t, time.Date(2026, 2, 11, 0, 0, 0, 0, ShopTZ), dr.Start)
	assert.Equal(t, 11, dr.End.Day())
	assert.Equal(t, 23, dr.End.Hour())
	assert.Equal(t, 1, dr.Days())
}

func TestResolveRangeWeekStartsMonday(t *testing.T) {
	dr, err := ResolveRange(FilterWeek, "", "", wednesday)
	require.NoError(t, err)

	assert.Equal(t, time.Monday, dr.Start.Weekday())
	assert.Equal(t, time.Date(2026, 2, 9, 0, 0, 0, 0, ShopTZ), dr.Start)
	assert.Equal(t, time.Sunday, dr.End.Weekday())
	assert.Equal(t, 7, dr.Days())

	// A Sunday still belongs to the week that began the previous Monday
	sunday := time.Date(2026, 2, 15, 10, 0, 0, 0, ShopTZ)
	dr, err = ResolveRange(FilterWeek, "", "", sunday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 9, 0, 0, 0, 0, ShopTZ), dr.Start)
}

func TestResolveRangeMonth(t *testing.T) {
	dr, err := ResolveRange(FilterMonth, "", "", wednesday)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, ShopTZ), dr.Start)
	assert.Equal(t, 28, dr.End.Day())
	assert.Equal(t, 28, dr.Days())
}

func TestResolveRangeQuarter(t *testing.T) {
	dr, err := ResolveRange(FilterQuarter, "", "", wednesday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, ShopTZ), dr.Start)
	assert.Equal(t, time.March, dr.End.Month())
	assert.Equal(t, 31, dr.End.Day())

	// Fourth quarter
	november := time.Date(2026, 11, 5, 9, 0, 0, 0, ShopTZ)
	dr, err = ResolveRange(FilterQuarter, "", "", november)
	require.NoError(t, err)
	assert.Equal(t, time.October, dr.Start.Month())
	assert.Equal(t, time.December, dr.End.Month())
}

func TestResolveRangeYear(t *testing.T) {
	dr, err := ResolveRange(FilterYear, "", "", wednesday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, ShopTZ), dr.Start)
	assert.Equal(t, time.December, dr.End.Month())
	assert.Equal(t, 365, dr.Days())
}

func TestResolveRangeCustom(t *testing.T) {
	dr, err := ResolveRange(FilterCustom, "2026-01-10", "2026-01-20", wednesday)
	require.NoError(t, err)
	assert.Equal(t, 11, dr.Days())
	assert.True(t, dr.Contains(time.Date(2026, 1, 15, 12, 0, 0, 0, ShopTZ)))
	assert.False(t, dr.Contains(time.Date(2026, 1, 21, 0, 0, 0, 1, ShopTZ)))

	_, err = ResolveRange(FilterCustom, "10/01/2026", "2026-01-20", wednesday)
	assert.Error(t, err)

	_, err = ResolveRange(FilterCustom, "2026-01-20", "2026-01-10", wednesday)
	assert.Error(t, err)
}

func TestSpanDays(t *testing.T) {
	dr, err := ResolveRange(FilterCustom, "2026-06-01", "2026-07-02", wednesday)
	require.NoError(t, err)
	assert.Equal(t, 31, dr.SpanDays())
	assert.Equal(t, 32, dr.Days())

	dr, err = ResolveRange(FilterCustom, "2026-06-01", "2026-06-01", wednesday)
	require.NoError(t, err)
	assert.Equal(t, 0, dr.SpanDays())
	assert.Equal(t, 1, dr.Days())
}

func TestSpanDaysAcrossDSTChange(t *testing.T) {
	// Spring-forward (2026-03-29 in Brussels) shortens the range by an
	// hour; calendar-day arithmetic must not lose a day to that.
	dr, err := ResolveRange(FilterCustom, "2026-03-01", "2026-04-01", wednesday)
	require.NoError(t, err)
	assert.Equal(t, 31, dr.SpanDays())
	assert.Equal(t, 32, dr.Days())
}

func TestResolveRangeAllTime(t *testing.T) {
	for _, filter := range []string{FilterAll, "", "bogus"} {
		dr, err := ResolveRange(filter, "", "", wednesday)
		require.NoError(t, err)
		assert.False(t, dr.Bounded)
		assert.True(t, dr.Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, ShopTZ)))
	}
}
