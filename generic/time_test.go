package generic_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyrobaz/campsite-crm/generic"
)

// =============================================================================
// TIME POINT TESTS
// =============================================================================

func TestParseDate(t *testing.T) {
	tp, err := generic.ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", tp.String())
	assert.Equal(t, time.Thursday, tp.Weekday())

	_, err = generic.ParseDate("2024-02-30")
	assert.ErrorIs(t, err, generic.ErrInvalidDate)
	assert.True(t, generic.IsClientError(err))

	var dateErr *generic.DateError
	require.True(t, errors.As(err, &dateErr))
	assert.Equal(t, "2024-02-30", dateErr.Input)

	_, err = generic.ParseDate("06/01/2024")
	assert.Error(t, err)
}

func TestParseDateOr_FallsBack(t *testing.T) {
	fallback := generic.NewTimePoint(2024, time.June, 1)

	assert.Equal(t, fallback, generic.ParseDateOr("", fallback))
	assert.Equal(t, fallback, generic.ParseDateOr("tomorrow", fallback))
	assert.Equal(t, "2024-07-04", generic.ParseDateOr("2024-07-04", fallback).String())
}

func TestTimePoint_AddDaysAcrossMonthAndLeapDay(t *testing.T) {
	start := generic.NewTimePoint(2024, time.February, 28)

	assert.Equal(t, "2024-02-29", start.AddDays(1).String())
	assert.Equal(t, "2024-03-01", start.AddDays(2).String())
	assert.Equal(t, "2024-02-27", start.AddDays(-1).String())
}

func TestDaysBetween(t *testing.T) {
	a := generic.NewTimePoint(2024, time.March, 1)
	b := generic.NewTimePoint(2024, time.March, 15)

	assert.Equal(t, 14, generic.DaysBetween(a, b))
	assert.Equal(t, -14, generic.DaysBetween(b, a))
	assert.Equal(t, 14, generic.AbsDays(b, a))
	assert.Equal(t, 0, generic.DaysBetween(a, a))

	// The US DST change on March 10 does not shorten the count
	assert.Equal(t, 31, generic.DaysBetween(a, a.AddDays(31)))
}

func TestDaysBetween_FarApartDates(t *testing.T) {
	// A typo'd year still yields an exact count rather than a capped duration
	from := generic.NewTimePoint(202, time.June, 1)
	to := generic.NewTimePoint(2026, time.June, 1)

	assert.Equal(t, 666203, generic.DaysBetween(from, to))
	assert.Equal(t, -666203, generic.DaysBetween(to, from))
	assert.Equal(t, 666203, generic.AbsDays(to, from))
}

func TestDayOf_UsesTimesOwnLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	late := time.Date(2024, time.June, 1, 20, 0, 0, 0, time.UTC).In(tokyo)

	assert.Equal(t, "2024-06-02", generic.DayOf(late).String())
}

func TestTimePoint_Comparisons(t *testing.T) {
	a := generic.NewTimePoint(2024, time.June, 1)
	b := a.AddDays(1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.BeforeOrEqual(a))
	assert.True(t, b.AfterOrEqual(a))
	assert.False(t, a.IsZero())
	assert.True(t, generic.TimePoint{}.IsZero())
}

// =============================================================================
// CLOCK TESTS
// =============================================================================

func TestFixedClockToday(t *testing.T) {
	clock := generic.FixedClock{At: time.Date(2024, time.June, 1, 23, 59, 0, 0, time.UTC)}
	assert.Equal(t, "2024-06-01", generic.Today(clock).String())
}

func TestSystemClockHonorsLocation(t *testing.T) {
	zone := time.FixedZone("X", -5*60*60)
	now := generic.SystemClock{Location: zone}.Now()
	assert.Equal(t, zone, now.Location())
}
