package generic_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/robbyrobaz/campsite-crm/generic"
)

func june(d int) generic.TimePoint { return generic.NewTimePoint(2024, time.June, d) }

func TestInterval_HalfOpenOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b generic.Interval
		want bool
	}{
		{"back to back", generic.StayInterval(june(1), 2), generic.StayInterval(june(3), 2), false},
		{"one shared night", generic.StayInterval(june(1), 2), generic.StayInterval(june(2), 2), true},
		{"contained", generic.StayInterval(june(1), 10), generic.StayInterval(june(4), 1), true},
		{"identical", generic.StayInterval(june(1), 1), generic.StayInterval(june(1), 1), true},
		{"disjoint", generic.StayInterval(june(1), 1), generic.StayInterval(june(5), 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap is symmetric")
		})
	}
}

func TestInterval_ContainsAndNights(t *testing.T) {
	i := generic.StayInterval(june(1), 3)

	assert.Equal(t, 3, i.Nights())
	assert.True(t, i.Contains(june(1)))
	assert.True(t, i.Contains(june(3)))
	assert.False(t, i.Contains(june(4)), "checkout day is not a night of the stay")
	assert.False(t, i.IsEmpty())
	assert.True(t, generic.Interval{Start: june(2), End: june(2)}.IsEmpty())
	assert.Equal(t, "[2024-06-01, 2024-06-04)", i.String())
}

func TestInterval_Union(t *testing.T) {
	u := generic.StayInterval(june(10), 2).Union(generic.StayInterval(june(1), 3))

	assert.Equal(t, june(1), u.Start)
	assert.Equal(t, june(12), u.End)
}
