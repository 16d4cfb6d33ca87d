// Package booking implements the campground availability, pricing and policy
// engine on top of the generic primitives.
package booking

import (
	"strings"

	"github.com/robbyrobaz/campsite-crm/generic"
)

// =============================================================================
// AREA KEY - Closed set of lodging area types
// =============================================================================

// AreaKey identifies a lodging area type. Values outside the constants below
// never exist past NormalizeAreaKey.
type AreaKey string

const (
	AreaCabin    AreaKey = "cabin"
	AreaTent     AreaKey = "tent"
	AreaKitchen  AreaKey = "kitchen"
	AreaBarn     AreaKey = "barn"
	AreaPavilion AreaKey = "pavilion"
	AreaMixed    AreaKey = "mixed"
)

// AllAreaKeys lists every area key in catalog order.
var AllAreaKeys = []AreaKey{AreaCabin, AreaTent, AreaKitchen, AreaBarn, AreaPavilion, AreaMixed}

// IsKnown reports whether k is one of the declared keys.
func (k AreaKey) IsKnown() bool {
	for _, known := range AllAreaKeys {
		if k == known {
			return true
		}
	}
	return false
}

func (k AreaKey) String() string { return string(k) }

// =============================================================================
// STATUS - Booking lifecycle as recorded by the booking store
// =============================================================================

type Status string

const (
	StatusActive     Status = "active"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked-in"
	StatusCheckedOut Status = "checked-out"
	StatusCanceled   Status = "canceled"
	StatusNoShow     Status = "no-show"
)

var allStatuses = []Status{StatusActive, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCanceled, StatusNoShow}

// ParseStatus normalizes a stored status. Empty or unknown values are
// treated as active.
func ParseStatus(raw string) Status {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range allStatuses {
		if s == known {
			return s
		}
	}
	return StatusActive
}

// HoldsInventory is false for bookings that no longer occupy a unit.
func (s Status) HoldsInventory() bool {
	return s != StatusCanceled && s != StatusNoShow
}

// =============================================================================
// STAY RECORD - Existing booking as read from the booking store
// =============================================================================

// StayRecord is an existing booking. Stores build these with
// NewStayRecord so every field is already normalized.
type StayRecord struct {
	ID     string
	Area   AreaKey
	Start  generic.TimePoint
	Nights int
	Status Status
}

// NewStayRecord normalizes raw store values into a StayRecord.
func NewStayRecord(catalog *Catalog, id, area string, start generic.TimePoint, nights int, status string) StayRecord {
	if nights < 1 {
		nights = 1
	}
	return StayRecord{
		ID:     id,
		Area:   catalog.NormalizeAreaKey(area),
		Start:  start,
		Nights: nights,
		Status: ParseStatus(status),
	}
}

// Interval returns the nights the stay occupies.
func (r StayRecord) Interval() generic.Interval {
	return generic.StayInterval(r.Start, r.Nights)
}

// =============================================================================
// AMENITIES - Requested amenity set
// =============================================================================

// ParseAmenities lowercases, trims, splits comma lists and de-duplicates
// requested amenities, preserving first-seen order.
func ParseAmenities(values ...string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			a := strings.ToLower(strings.TrimSpace(part))
			if a == "" || seen[a] {
				continue
			}
			seen[a] = true
			out = append(out, a)
		}
	}
	return out
}

// =============================================================================
// STAY QUERY - A proposed stay
// =============================================================================

// StayQuery describes a proposed stay. Preference is empty when the caller
// has no area preference.
type StayQuery struct {
	Start      generic.TimePoint
	Nights     int
	PartySize  int
	Amenities  []string
	Preference AreaKey
}

// Interval returns the nights the proposed stay would occupy.
func (q StayQuery) Interval() generic.Interval {
	return generic.StayInterval(q.Start, q.Nights)
}

// HasPreference reports whether an area preference was given.
func (q StayQuery) HasPreference() bool { return q.Preference != "" }
