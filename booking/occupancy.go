package booking

import "github.com/robbyrobaz/campsite-crm/generic"

// CountBookedUnits returns how many existing stays in area share at least one
// night with [start, start+nights). Canceled and no-show bookings are skipped.
func CountBookedUnits(stays []StayRecord, area AreaKey, start generic.TimePoint, nights int) int {
	proposed := generic.StayInterval(start, nights)
	count := 0
	for _, s := range stays {
		if s.Area != area || !s.Status.HoldsInventory() {
			continue
		}
		if s.Interval().Overlaps(proposed) {
			count++
		}
	}
	return count
}

// bookedByArea counts overlapping units for every area in one pass.
func bookedByArea(stays []StayRecord, window generic.Interval) map[AreaKey]int {
	booked := make(map[AreaKey]int)
	for _, s := range stays {
		if !s.Status.HoldsInventory() {
			continue
		}
		if s.Interval().Overlaps(window) {
			booked[s.Area]++
		}
	}
	return booked
}
