package booking_test

import (
	"context"
	"strconv"
	"time"

	"github.com/robbyrobaz/campsite-crm/booking"
	"github.com/robbyrobaz/campsite-crm/generic"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func day(y int, m time.Month, d int) generic.TimePoint {
	return generic.NewTimePoint(y, m, d)
}

// june is shorthand for a day in June 2024. June 1 2024 is a Saturday.
func june(d int) generic.TimePoint { return day(2024, time.June, d) }

func clockAt(y int, m time.Month, d, hour int) generic.FixedClock {
	return generic.FixedClock{At: time.Date(y, m, d, hour, 0, 0, 0, time.UTC)}
}

var stayCounter int

func stay(area booking.AreaKey, start generic.TimePoint, nights int) booking.StayRecord {
	stayCounter++
	return booking.StayRecord{
		ID:     "stay-" + strconv.Itoa(stayCounter),
		Area:   area,
		Start:  start,
		Nights: nights,
		Status: booking.StatusConfirmed,
	}
}

func repeatStay(n int, area booking.AreaKey, start generic.TimePoint, nights int) []booking.StayRecord {
	out := make([]booking.StayRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, stay(area, start, nights))
	}
	return out
}

func rowFor(rows []booking.AvailabilityRow, key booking.AreaKey) (booking.AvailabilityRow, bool) {
	for _, r := range rows {
		if r.AreaKey == key {
			return r, true
		}
	}
	return booking.AvailabilityRow{}, false
}

func rowKeys(rows []booking.AvailabilityRow) []booking.AreaKey {
	keys := make([]booking.AreaKey, len(rows))
	for i, r := range rows {
		keys[i] = r.AreaKey
	}
	return keys
}

// fakeStays is an in-test StayReader that records the windows it was asked for.
type fakeStays struct {
	stays   []booking.StayRecord
	err     error
	windows []generic.Interval
}

func (f *fakeStays) ListStaysOverlapping(_ context.Context, window generic.Interval) ([]booking.StayRecord, error) {
	f.windows = append(f.windows, window)
	if f.err != nil {
		return nil, f.err
	}
	var out []booking.StayRecord
	for _, s := range f.stays {
		if s.Interval().Overlaps(window) {
			out = append(out, s)
		}
	}
	return out, nil
}

// fakeAlerts is an in-test AlertStore.
type fakeAlerts struct {
	alerts  []booking.AvailabilityAlert
	listErr error
	updates map[string]booking.AlertStatus
}

func (f *fakeAlerts) ListAlerts(_ context.Context, status booking.AlertStatus) ([]booking.AvailabilityAlert, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []booking.AvailabilityAlert
	for _, a := range f.alerts {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAlerts) UpdateAlertStatus(_ context.Context, id string, status booking.AlertStatus, _ time.Time) error {
	if f.updates == nil {
		f.updates = make(map[string]booking.AlertStatus)
	}
	f.updates[id] = status
	return nil
}
