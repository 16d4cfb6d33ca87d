package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyrobaz/campsite-crm/booking"
	"github.com/robbyrobaz/campsite-crm/generic"
	"github.com/robbyrobaz/campsite-crm/store"
	"github.com/robbyrobaz/campsite-crm/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	s, err := sqlite.New(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func june(d int) generic.TimePoint { return generic.NewTimePoint(2024, time.June, d) }

func saveBooking(t *testing.T, s *sqlite.Store, id string, start generic.TimePoint, nights int, area, status string) {
	t.Helper()
	require.NoError(t, s.SaveBooking(context.Background(), store.Booking{
		ID:          id,
		BookingDate: start,
		GuestName:   "Guest " + id,
		Nights:      nights,
		AreaRented:  area,
		Revenue:     generic.NewMoney(123.45),
		Status:      status,
	}))
}

func ids(stays []booking.StayRecord) []string {
	out := make([]string, len(stays))
	for i, s := range stays {
		out[i] = s.ID
	}
	return out
}

// =============================================================================
// OVERLAP QUERY TESTS
// =============================================================================

func TestListStaysOverlapping_HalfOpenBoundaries(t *testing.T) {
	// GIVEN: Stays checking out as the window opens, spanning its start,
	// inside it, and arriving as it closes
	s := newTestStore(t)
	saveBooking(t, s, "ends-at-start", june(1), 2, "cabin", "confirmed")
	saveBooking(t, s, "spans", day(2024, time.May, 25), 10, "tent", "")
	saveBooking(t, s, "inside", june(4), 1, "barn", "checked-in")
	saveBooking(t, s, "starts-at-end", june(6), 3, "cabin", "active")

	// WHEN: Querying [June 3, June 6)
	stays, err := s.ListStaysOverlapping(context.Background(), generic.Interval{Start: june(3), End: june(6)})

	// THEN: Only stays sharing a night are returned, oldest first
	require.NoError(t, err)
	assert.Equal(t, []string{"spans", "inside"}, ids(stays))
}

func TestListStaysOverlapping_NormalizesRows(t *testing.T) {
	s := newTestStore(t)
	saveBooking(t, s, "b1", june(3), 0, "Tent Site", "CANCELED")
	saveBooking(t, s, "b2", june(3), 2, "Kitchen Area", "weird")

	stays, err := s.ListStaysOverlapping(context.Background(), generic.StayInterval(june(3), 1))
	require.NoError(t, err)
	require.Len(t, stays, 2)

	assert.Equal(t, booking.AreaTent, stays[0].Area)
	assert.Equal(t, 1, stays[0].Nights, "zero nights is read as one")
	assert.Equal(t, booking.StatusCanceled, stays[0].Status)

	assert.Equal(t, booking.AreaMixed, stays[1].Area)
	assert.Equal(t, booking.StatusActive, stays[1].Status)
}

func TestListStaysOverlapping_SkipsMalformedDates(t *testing.T) {
	s := newTestStore(t)
	saveBooking(t, s, "good", june(3), 1, "cabin", "")
	// A booking saved without an arrival date
	require.NoError(t, s.SaveBooking(context.Background(), store.Booking{ID: "bad", GuestName: "x", Nights: 1, AreaRented: "cabin"}))

	stays, err := s.ListStaysOverlapping(context.Background(), generic.Interval{Start: june(1), End: june(30)})
	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, ids(stays))
}

func TestListStaysOverlapping_ClosedStoreIsAnError(t *testing.T) {
	s, err := sqlite.New(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.ListStaysOverlapping(context.Background(), generic.StayInterval(june(1), 1))
	assert.Error(t, err)
}

// =============================================================================
// BOOKING CRUD TESTS
// =============================================================================

func TestGetBooking_RoundTripsFields(t *testing.T) {
	s := newTestStore(t)
	saveBooking(t, s, "b1", june(3), 2, "barn", "")

	b, err := s.GetBooking(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", b.BookingDate.String())
	assert.Equal(t, "individual", b.GuestType)
	assert.Equal(t, "active", b.Status)
	assert.Equal(t, "123.45", b.Revenue.String())

	_, err = s.GetBooking(context.Background(), "nope")
	assert.True(t, generic.IsNotFound(err))
}

func TestPrefixOperations_EscapeWildcards(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	saveBooking(t, s, "demo_1", june(1), 1, "tent", "")
	saveBooking(t, s, "demo_2", june(1), 1, "tent", "")
	saveBooking(t, s, "demoX3", june(1), 1, "tent", "")

	n, err := s.CountBookingsWithPrefix(ctx, "demo_")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "underscore is literal, not a LIKE wildcard")

	removed, err := s.DeleteBookingsWithPrefix(ctx, "demo_")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	n, _ = s.CountBookingsWithPrefix(ctx, "demo")
	assert.Equal(t, 1, n)
}

// =============================================================================
// ALERT TESTS
// =============================================================================

func TestAlerts_SaveListUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC)

	alert, err := booking.NewAvailabilityAlert("a1", "Pat", "(650) 253-0000", booking.AreaKitchen, june(10), 2, 8, now)
	require.NoError(t, err)
	require.NoError(t, s.SaveAlert(ctx, alert))

	active, err := s.ListAlerts(ctx, booking.AlertActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	got := active[0]
	assert.Equal(t, "+16502530000", got.Contact)
	assert.Equal(t, booking.AreaKitchen, got.PreferredArea)
	assert.Equal(t, "2024-06-10", got.RequestedStart.String())
	assert.Equal(t, 2, got.Nights)
	assert.Equal(t, 8, got.PartySize)
	assert.True(t, got.CreatedAt.Equal(now))

	require.NoError(t, s.UpdateAlertStatus(ctx, "a1", booking.AlertMatched, now.Add(time.Hour)))
	active, err = s.ListAlerts(ctx, booking.AlertActive)
	require.NoError(t, err)
	assert.Empty(t, active)

	fetched, err := s.GetAlert(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, booking.AlertMatched, fetched.Status)
	assert.True(t, fetched.UpdatedAt.Equal(now.Add(time.Hour)))

	assert.True(t, generic.IsNotFound(s.UpdateAlertStatus(ctx, "missing", booking.AlertClosed, now)))
}

func TestEngineOverSqlite_SweepMatchesAlert(t *testing.T) {
	// GIVEN: A pavilion alert while the pavilion is booked, then the booking cancels
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	saveBooking(t, s, "pav", june(10), 2, "pavilion", "confirmed")

	alert, err := booking.NewAvailabilityAlert("a1", "Pat", "pat@example.com", booking.AreaPavilion, june(10), 1, 10, now)
	require.NoError(t, err)
	require.NoError(t, s.SaveAlert(ctx, alert))

	engine := booking.NewEngine(booking.DefaultCatalog(), booking.DefaultPolicy(), s, generic.FixedClock{At: now})

	matched, err := engine.SweepAlerts(ctx, s)
	require.NoError(t, err)
	assert.Zero(t, matched)

	saveBooking(t, s, "pav", june(10), 2, "pavilion", "canceled")

	// WHEN
	matched, err = engine.SweepAlerts(ctx, s)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 1, matched)
	fetched, err := s.GetAlert(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, booking.AlertMatched, fetched.Status)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	saveBooking(t, s, "b1", june(1), 1, "tent", "")

	require.NoError(t, s.Reset(ctx))
	n, err := s.CountBookingsWithPrefix(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func day(y int, m time.Month, d int) generic.TimePoint { return generic.NewTimePoint(y, m, d) }
