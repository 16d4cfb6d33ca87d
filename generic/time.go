package generic

import (
	"strings"
	"time"
)

// =============================================================================
// TIME POINT - A calendar day with no time-of-day component
// =============================================================================

// DateLayout is the textual form of every date crossing a boundary.
const DateLayout = "2006-01-02"

// TimePoint is a calendar day. It is stored as UTC midnight so that day
// arithmetic never crosses a DST boundary.
type TimePoint struct {
	Time time.Time
}

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) TimePoint {
	return NewTimePoint(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (TimePoint, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return TimePoint{}, &DateError{Input: s, Err: err}
	}
	return DayOf(t), nil
}

// ParseDateOr parses s, returning fallback when s is empty or malformed.
func ParseDateOr(s string, fallback TimePoint) TimePoint {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	tp, err := ParseDate(s)
	if err != nil {
		return fallback
	}
	return tp
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.Time.Before(other.Time) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.Time.Equal(other.Time) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.Time.After(other.Time) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return !tp.After(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return !tp.Before(other) }

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint { return TimePoint{Time: tp.Time.AddDate(0, 0, n)} }

// Properties
func (tp TimePoint) Weekday() time.Weekday { return tp.Time.Weekday() }
func (tp TimePoint) IsZero() bool          { return tp.Time.IsZero() }

func (tp TimePoint) String() string { return tp.Time.Format(DateLayout) }

// DaysBetween returns to - from in whole days. Negative when to is earlier.
func DaysBetween(from, to TimePoint) int {
	return int((to.Time.Unix() - from.Time.Unix()) / 86400)
}

// AbsDays returns |DaysBetween(a, b)|.
func AbsDays(a, b TimePoint) int {
	d := DaysBetween(a, b)
	if d < 0 {
		return -d
	}
	return d
}

// =============================================================================
// CLOCK - Injected wall clock so "today" and cutoffs are testable
// =============================================================================

// Clock supplies the current local time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time in Location (time.Local when nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// Today returns the clock's current calendar day.
func Today(c Clock) TimePoint { return DayOf(c.Now()) }
