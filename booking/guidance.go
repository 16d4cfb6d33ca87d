package booking

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/robbyrobaz/campsite-crm/generic"
)

// GuidanceAction is the suggested pricing move for an area.
type GuidanceAction string

const (
	ActionRaise    GuidanceAction = "raise"
	ActionHold     GuidanceAction = "hold"
	ActionDiscount GuidanceAction = "discount"
)

// PricingRecommendation is occupancy-based pricing guidance for one area.
type PricingRecommendation struct {
	Area               AreaKey
	AreaName           string
	OccupancyRate      decimal.Decimal
	BookingCount       int
	BookedNights       int
	CapacityNights     int
	Action             GuidanceAction
	SuggestedChangePct int
}

// PricingGuidance summarizes bookings that start within window (inclusive of
// both ends) per area and suggests a price change from the occupancy rate.
// Only areas with at least one booking appear, busiest first.
func PricingGuidance(catalog *Catalog, g GuidancePolicy, stays []StayRecord, window generic.Interval) []PricingRecommendation {
	type stats struct {
		bookings int
		nights   int
	}
	byArea := make(map[AreaKey]*stats)
	for _, s := range stays {
		if !s.Status.HoldsInventory() {
			continue
		}
		if s.Start.Before(window.Start) || s.Start.After(window.End) {
			continue
		}
		st, ok := byArea[s.Area]
		if !ok {
			st = &stats{}
			byArea[s.Area] = st
		}
		st.bookings++
		st.nights += s.Nights
	}

	recs := []PricingRecommendation{}
	for _, area := range catalog.Areas() {
		st, ok := byArea[area.Key]
		if !ok {
			continue
		}
		capacityNights := area.CapacityUnits * g.WindowDays
		rate := decimal.Zero
		if capacityNights > 0 {
			rate = decimal.NewFromInt(int64(st.nights)).
				Div(decimal.NewFromInt(int64(capacityNights))).
				Mul(decimal.NewFromInt(100))
		}
		action, change := g.classify(rate)
		recs = append(recs, PricingRecommendation{
			Area:               area.Key,
			AreaName:           area.Label,
			OccupancyRate:      rate.Round(1),
			BookingCount:       st.bookings,
			BookedNights:       st.nights,
			CapacityNights:     capacityNights,
			Action:             action,
			SuggestedChangePct: change,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].OccupancyRate.GreaterThan(recs[j].OccupancyRate)
	})
	return recs
}

func (g GuidancePolicy) classify(rate decimal.Decimal) (GuidanceAction, int) {
	for _, t := range g.RaiseTiers {
		if rate.GreaterThanOrEqual(decimal.NewFromFloat(t.MinOccupancyPct)) {
			return ActionRaise, t.ChangePct
		}
	}
	for _, t := range g.DiscountTiers {
		if rate.LessThan(decimal.NewFromFloat(t.BelowOccupancyPct)) {
			return ActionDiscount, t.ChangePct
		}
	}
	return ActionHold, 0
}
