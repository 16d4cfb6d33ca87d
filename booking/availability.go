/*
availability.go - Availability snapshot and alternative dates

PURPOSE:
  Answers "which areas can take this stay?" for one proposed stay, and
  "when else could it fit?" by scanning forward day by day.

SNAPSHOT ORDER:
  Rows are stable-sorted by:
  1. available before unavailable
  2. higher amenity match percentage
  3. more remaining units
  Ties keep catalog order. The first available rows are the recommended
  areas, so this order is part of the contract.

ALTERNATIVE SCAN:
  Candidate starts are start+1 .. start+ScanDays. Amenities are ignored;
  only availability and the area preference matter. The scan stops as soon
  as MaxAlternatives dates are found.

SEE ALSO:
  - occupancy.go: Overlap counting
  - readiness.go: Consumes snapshot rows
*/
package booking

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/robbyrobaz/campsite-crm/generic"
)

// AmenityPctPlaces is the rounding applied to amenity match percentages.
const AmenityPctPlaces = 1

// AvailabilityRow is the availability of one area for a proposed stay.
type AvailabilityRow struct {
	AreaKey           AreaKey
	AreaName          string
	CapacityUnits     int
	BookedUnits       int
	RemainingUnits    int
	Available         bool
	MaxPartySize      int
	BaseRate          generic.Money
	Amenities         []string
	AmenityMatchCount int
	AmenityMatchPct   decimal.Decimal
}

// BuildSnapshot returns one row per catalog area, in recommendation order.
func BuildSnapshot(catalog *Catalog, stays []StayRecord, q StayQuery) []AvailabilityRow {
	booked := bookedByArea(stays, q.Interval())
	hundred := decimal.NewFromInt(100)

	rows := make([]AvailabilityRow, 0, catalog.Len())
	for _, area := range catalog.Areas() {
		bookedUnits := booked[area.Key]
		remaining := area.CapacityUnits - bookedUnits
		if remaining < 0 {
			remaining = 0
		}

		matches := 0
		for _, want := range q.Amenities {
			if area.HasAmenity(want) {
				matches++
			}
		}
		pct := hundred
		if len(q.Amenities) > 0 {
			pct = generic.Percent(matches, len(q.Amenities), AmenityPctPlaces)
		}

		rows = append(rows, AvailabilityRow{
			AreaKey:           area.Key,
			AreaName:          area.Label,
			CapacityUnits:     area.CapacityUnits,
			BookedUnits:       bookedUnits,
			RemainingUnits:    remaining,
			Available:         remaining > 0 && q.PartySize <= area.MaxPartySize,
			MaxPartySize:      area.MaxPartySize,
			BaseRate:          area.BaseRatePerNight,
			Amenities:         area.Amenities,
			AmenityMatchCount: matches,
			AmenityMatchPct:   pct,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Available != b.Available {
			return a.Available
		}
		if !a.AmenityMatchPct.Equal(b.AmenityMatchPct) {
			return a.AmenityMatchPct.GreaterThan(b.AmenityMatchPct)
		}
		return a.RemainingUnits > b.RemainingUnits
	})
	return rows
}

// FilterByPreference keeps only the preferred area's row. No preference
// returns rows unchanged.
func FilterByPreference(rows []AvailabilityRow, preference AreaKey) []AvailabilityRow {
	if preference == "" {
		return rows
	}
	out := []AvailabilityRow{}
	for _, r := range rows {
		if r.AreaKey == preference {
			out = append(out, r)
		}
	}
	return out
}

// Recommended returns up to limit available rows, in snapshot order.
func Recommended(rows []AvailabilityRow, limit int) []AvailabilityRow {
	out := []AvailabilityRow{}
	for _, r := range rows {
		if len(out) >= limit {
			break
		}
		if r.Available {
			out = append(out, r)
		}
	}
	return out
}

// =============================================================================
// ALTERNATIVE DATES
// =============================================================================

// AlternativeDate is a nearby start date with at least one matching area.
type AlternativeDate struct {
	Start          generic.TimePoint
	End            generic.TimePoint
	AvailableAreas []string
}

// FindAlternatives scans forward from start for dates the stay would fit.
func FindAlternatives(catalog *Catalog, search SearchPolicy, stays []StayRecord, q StayQuery) []AlternativeDate {
	alternatives := []AlternativeDate{}
	for i := 1; i <= search.ScanDays; i++ {
		candidate := StayQuery{
			Start:     q.Start.AddDays(i),
			Nights:    q.Nights,
			PartySize: q.PartySize,
		}

		var names []string
		for _, row := range BuildSnapshot(catalog, stays, candidate) {
			if !row.Available || (q.HasPreference() && row.AreaKey != q.Preference) {
				continue
			}
			if len(names) < search.AreasPerAlternative {
				names = append(names, row.AreaName)
			}
		}

		if len(names) > 0 {
			alternatives = append(alternatives, AlternativeDate{
				Start:          candidate.Start,
				End:            candidate.Start.AddDays(q.Nights),
				AvailableAreas: names,
			})
		}
		if len(alternatives) >= search.MaxAlternatives {
			break
		}
	}
	return alternatives
}

// ScanWindow is the date range whose stays can affect the snapshot at start
// and every candidate FindAlternatives may visit.
func ScanWindow(search SearchPolicy, q StayQuery) generic.Interval {
	return generic.Interval{
		Start: q.Start,
		End:   q.Start.AddDays(search.ScanDays + q.Nights),
	}
}
