package booking

import (
	"github.com/shopspring/decimal"
)

// ReadinessBand buckets a readiness score.
type ReadinessBand string

const (
	ReadinessLow    ReadinessBand = "low"
	ReadinessMedium ReadinessBand = "medium"
	ReadinessHigh   ReadinessBand = "high"
)

// ReadinessFactors is the input snapshot a score was computed from.
type ReadinessFactors struct {
	AreasAvailable      int
	TotalAreas          int
	BestAmenityMatchPct decimal.Decimal
	RulesPassed         bool
}

type ReadinessScore struct {
	Score   int
	Band    ReadinessBand
	Factors ReadinessFactors
}

// ScoreReadiness combines availability, amenity fit and rule compliance into
// a 0-100 score.
//
//	availability = min(available/total × Availability, Availability)
//	amenity      = amenities wanted ? min(bestPct/100 × AmenityMatch, AmenityMatch) : NoPreference
//	rules        = passes ? Rules : 0
func ScoreReadiness(w ReadinessWeights, rows []AvailabilityRow, rules StayRuleResult, wantedAmenities []string) ReadinessScore {
	total := len(rows)
	if total == 0 {
		total = 1
	}
	available := 0
	best := decimal.Zero
	for _, r := range rows {
		if r.Available {
			available++
		}
		if r.AmenityMatchPct.GreaterThan(best) {
			best = r.AmenityMatchPct
		}
	}

	availabilityCap := decimal.NewFromInt(int64(w.Availability))
	availabilityScore := decimal.Min(
		decimal.NewFromInt(int64(available)).Div(decimal.NewFromInt(int64(total))).Mul(availabilityCap),
		availabilityCap,
	)

	amenityScore := decimal.NewFromInt(int64(w.NoPreference))
	if len(wantedAmenities) > 0 {
		amenityCap := decimal.NewFromInt(int64(w.AmenityMatch))
		amenityScore = decimal.Min(best.Div(decimal.NewFromInt(100)).Mul(amenityCap), amenityCap)
	}

	ruleScore := decimal.Zero
	if rules.Passes {
		ruleScore = decimal.NewFromInt(int64(w.Rules))
	}

	raw := availabilityScore.Add(amenityScore).Add(ruleScore)
	score := int(raw.Round(0).IntPart())
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	band := ReadinessLow
	switch {
	case score >= w.HighBand:
		band = ReadinessHigh
	case score >= w.MediumBand:
		band = ReadinessMedium
	}

	return ReadinessScore{
		Score: score,
		Band:  band,
		Factors: ReadinessFactors{
			AreasAvailable:      available,
			TotalAreas:          total,
			BestAmenityMatchPct: best.Round(AmenityPctPlaces),
			RulesPassed:         rules.Passes,
		},
	}
}
