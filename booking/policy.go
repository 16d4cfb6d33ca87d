/*
policy.go - House policy constants

PURPOSE:
  Every tunable number the engine uses lives in one Policy value: stay rules,
  fees and rates, cancellation tiers, readiness weights and scan limits.
  Algorithms receive a Policy; none of them hard-code a weight.

POLICY COMPONENTS:
  StayRules:    Party size ceiling, max nights, weekend minimum, same-day cutoff
  Pricing:      Extra guest fee, site lock, service fee, tax, deposit
  Cancellation: Refund tiers by days until arrival, admin fee, change fee
  Readiness:    Score weights and band thresholds
  Search:       Alternative date horizon and result limits
  Guidance:     Occupancy thresholds for pricing recommendations

EXAMPLE:
  policy := booking.DefaultPolicy()
  policy.Pricing.TaxRate = generic.MustParseRate("0.09")
  engine := booking.NewEngine(catalog, policy, store, clock)

SEE ALSO:
  - factory/policy.go: Loading a Policy from YAML/JSON
*/
package booking

import "github.com/robbyrobaz/campsite-crm/generic"

// Policy groups every policy constant. Treat as read-only once built.
type Policy struct {
	Stay         StayRules
	Pricing      PricingPolicy
	Cancellation CancellationPolicy
	Readiness    ReadinessWeights
	Search       SearchPolicy
	Guidance     GuidancePolicy
}

// StayRules are the house rules a proposed stay is checked against.
type StayRules struct {
	MinNightsWeekend     int
	MaxNights            int
	MaxPartySizeAbsolute int
	SameDayCutoffHour    int
}

type PricingPolicy struct {
	ExtraGuestFeePerNight generic.Money
	SiteLockFee           generic.Money
	ServiceFeeRate        generic.Rate
	TaxRate               generic.Rate
	DepositRate           generic.Rate
}

// CancellationPolicy defines refund tiers by days until arrival.
//
//	days >= FullRefundDays              full refund less AdminFee
//	PartialRefundDays <= days < Full    PartialRefundRate less AdminFee, plus PartialCreditRate credit
//	days < PartialRefundDays            no refund, LateCreditRate credit
type CancellationPolicy struct {
	FullRefundDays    int
	PartialRefundDays int
	AdminFee          generic.Money
	PartialRefundRate generic.Rate
	PartialCreditRate generic.Rate
	LateCreditRate    generic.Rate
	ChangeFee         generic.Money
	HighShiftDays     int
}

// ReadinessWeights are the point budgets of the readiness score.
type ReadinessWeights struct {
	Availability int
	AmenityMatch int
	NoPreference int
	Rules        int
	HighBand     int
	MediumBand   int
}

type SearchPolicy struct {
	ScanDays            int
	MaxAlternatives     int
	AreasPerAlternative int
	MaxRecommended      int
}

// RaiseTier suggests a price increase at or above an occupancy floor.
type RaiseTier struct {
	MinOccupancyPct float64
	ChangePct       int
}

// GuidancePolicy holds pricing guidance thresholds. Raise tiers are checked
// highest first; discount tiers apply below their ceiling, lowest first.
type GuidancePolicy struct {
	WindowDays    int
	RaiseTiers    []RaiseTier
	DiscountTiers []DiscountTier
}

// DiscountTier suggests a price cut below an occupancy ceiling.
type DiscountTier struct {
	BelowOccupancyPct float64
	ChangePct         int
}

// DefaultPolicy returns the standard campground policy.
func DefaultPolicy() Policy {
	return Policy{
		Stay: StayRules{
			MinNightsWeekend:     2,
			MaxNights:            21,
			MaxPartySizeAbsolute: 24,
			SameDayCutoffHour:    18,
		},
		Pricing: PricingPolicy{
			ExtraGuestFeePerNight: generic.NewMoneyFromInt(12),
			SiteLockFee:           generic.NewMoneyFromInt(18),
			ServiceFeeRate:        generic.MustParseRate("0.06"),
			TaxRate:               generic.MustParseRate("0.085"),
			DepositRate:           generic.MustParseRate("0.25"),
		},
		Cancellation: CancellationPolicy{
			FullRefundDays:    14,
			PartialRefundDays: 7,
			AdminFee:          generic.NewMoneyFromInt(10),
			PartialRefundRate: generic.MustParseRate("0.5"),
			PartialCreditRate: generic.MustParseRate("0.4"),
			LateCreditRate:    generic.MustParseRate("0.3"),
			ChangeFee:         generic.NewMoneyFromInt(15),
			HighShiftDays:     7,
		},
		Readiness: ReadinessWeights{
			Availability: 55,
			AmenityMatch: 30,
			NoPreference: 20,
			Rules:        15,
			HighBand:     75,
			MediumBand:   50,
		},
		Search: SearchPolicy{
			ScanDays:            30,
			MaxAlternatives:     6,
			AreasPerAlternative: 2,
			MaxRecommended:      3,
		},
		Guidance: GuidancePolicy{
			WindowDays: 30,
			RaiseTiers: []RaiseTier{
				{MinOccupancyPct: 80, ChangePct: 12},
				{MinOccupancyPct: 65, ChangePct: 8},
			},
			DiscountTiers: []DiscountTier{
				{BelowOccupancyPct: 35, ChangePct: -10},
				{BelowOccupancyPct: 50, ChangePct: -5},
			},
		},
	}
}
