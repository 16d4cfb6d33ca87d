package generic

// =============================================================================
// INTERVAL - Half-open range of calendar days
// =============================================================================

// Interval is the half-open day range [Start, End). A stay checking out on
// the morning another checks in does not share a night with it.
//
// Examples:
//   - 2 nights from June 1: [2024-06-01, 2024-06-03)
//   - a search window covering a 30-day scan: [start, start+30+nights)
type Interval struct {
	Start TimePoint
	End   TimePoint
}

// StayInterval returns the nights occupied by a stay of n nights from start.
func StayInterval(start TimePoint, nights int) Interval {
	return Interval{Start: start, End: start.AddDays(nights)}
}

// Overlaps reports whether the two intervals share at least one night.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Contains returns true if day falls within [Start, End).
func (i Interval) Contains(day TimePoint) bool {
	return day.AfterOrEqual(i.Start) && day.Before(i.End)
}

// Nights returns the number of days in the interval.
func (i Interval) Nights() int { return DaysBetween(i.Start, i.End) }

// IsEmpty is true when End is not after Start.
func (i Interval) IsEmpty() bool { return !i.End.After(i.Start) }

// Union returns the smallest interval covering both.
func (i Interval) Union(other Interval) Interval {
	out := i
	if other.Start.Before(out.Start) {
		out.Start = other.Start
	}
	if other.End.After(out.End) {
		out.End = other.End
	}
	return out
}

// String returns a string representation of the interval.
func (i Interval) String() string {
	return "[" + i.Start.String() + ", " + i.End.String() + ")"
}
