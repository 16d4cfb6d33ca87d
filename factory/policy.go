/*
Package factory provides YAML/JSON to Go policy conversion.

This allows operators to tune the campground (areas, fees, cancellation
tiers, readiness weights) in a document and load it at startup, rather than
rebuilding the binary.

DOCUMENT SCHEMA:

	areas:                        # overlays the default area with the same key
	  - key: cabin                # cabin, tent, kitchen, barn, pavilion, mixed
	    label: Cabin
	    capacity_units: 8
	    base_rate: 110
	    max_party_size: 8
	    included_guests: 4
	    cleaning_fee: 20
	    amenities: [heating, power]
	    aliases: [cabins]
	stay:
	  min_nights_weekend: 2
	  max_nights: 21
	  max_party_size: 24
	  same_day_cutoff_hour: 18
	pricing:
	  extra_guest_fee: 12
	  site_lock_fee: 18
	  service_fee_rate: 0.06
	  tax_rate: 0.085
	  deposit_rate: 0.25
	cancellation:
	  full_refund_days: 14
	  partial_refund_days: 7
	  admin_fee: 10
	  partial_refund_rate: 0.5
	  partial_credit_rate: 0.4
	  late_credit_rate: 0.3
	  change_fee: 15
	  high_shift_days: 7
	readiness: {availability: 55, amenity_match: 30, no_preference: 20, rules: 15, high_band: 75, medium_band: 50}
	search: {scan_days: 30, max_alternatives: 6, areas_per_alternative: 2, max_recommended: 3}
	guidance:
	  window_days: 30
	  raise: [{min_occupancy_pct: 80, change_pct: 12}]
	  discount: [{below_occupancy_pct: 35, change_pct: -10}]

Every field is optional. Omitted fields keep the DefaultCatalog and
DefaultPolicy values. JSON documents are accepted as well, since the YAML
decoder reads JSON.

USAGE:

	f := factory.NewPolicyFactory()
	catalog, policy, err := f.LoadFile("campground.yaml")

SEE ALSO:
  - booking/catalog.go: Area configuration
  - booking/policy.go: Policy constants
*/
package factory

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/robbyrobaz/campsite-crm/booking"
	"github.com/robbyrobaz/campsite-crm/generic"
)

// =============================================================================
// DOCUMENT TYPES
// =============================================================================

// PolicyDocument is the on-disk representation of a catalog and policy.
type PolicyDocument struct {
	Areas        []AreaDocument        `yaml:"areas,omitempty" json:"areas,omitempty"`
	Stay         *StayDocument         `yaml:"stay,omitempty" json:"stay,omitempty"`
	Pricing      *PricingDocument      `yaml:"pricing,omitempty" json:"pricing,omitempty"`
	Cancellation *CancellationDocument `yaml:"cancellation,omitempty" json:"cancellation,omitempty"`
	Readiness    *ReadinessDocument    `yaml:"readiness,omitempty" json:"readiness,omitempty"`
	Search       *SearchDocument       `yaml:"search,omitempty" json:"search,omitempty"`
	Guidance     *GuidanceDocument     `yaml:"guidance,omitempty" json:"guidance,omitempty"`
}

// AreaDocument overlays one area. Key is required.
type AreaDocument struct {
	Key            string   `yaml:"key" json:"key"`
	Label          *string  `yaml:"label,omitempty" json:"label,omitempty"`
	CapacityUnits  *int     `yaml:"capacity_units,omitempty" json:"capacity_units,omitempty"`
	BaseRate       *float64 `yaml:"base_rate,omitempty" json:"base_rate,omitempty"`
	MaxPartySize   *int     `yaml:"max_party_size,omitempty" json:"max_party_size,omitempty"`
	IncludedGuests *int     `yaml:"included_guests,omitempty" json:"included_guests,omitempty"`
	CleaningFee    *float64 `yaml:"cleaning_fee,omitempty" json:"cleaning_fee,omitempty"`
	Amenities      []string `yaml:"amenities,omitempty" json:"amenities,omitempty"`
	Aliases        []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

type StayDocument struct {
	MinNightsWeekend  *int `yaml:"min_nights_weekend,omitempty" json:"min_nights_weekend,omitempty"`
	MaxNights         *int `yaml:"max_nights,omitempty" json:"max_nights,omitempty"`
	MaxPartySize      *int `yaml:"max_party_size,omitempty" json:"max_party_size,omitempty"`
	SameDayCutoffHour *int `yaml:"same_day_cutoff_hour,omitempty" json:"same_day_cutoff_hour,omitempty"`
}

type PricingDocument struct {
	ExtraGuestFee  *float64 `yaml:"extra_guest_fee,omitempty" json:"extra_guest_fee,omitempty"`
	SiteLockFee    *float64 `yaml:"site_lock_fee,omitempty" json:"site_lock_fee,omitempty"`
	ServiceFeeRate *float64 `yaml:"service_fee_rate,omitempty" json:"service_fee_rate,omitempty"`
	TaxRate        *float64 `yaml:"tax_rate,omitempty" json:"tax_rate,omitempty"`
	DepositRate    *float64 `yaml:"deposit_rate,omitempty" json:"deposit_rate,omitempty"`
}

type CancellationDocument struct {
	FullRefundDays    *int     `yaml:"full_refund_days,omitempty" json:"full_refund_days,omitempty"`
	PartialRefundDays *int     `yaml:"partial_refund_days,omitempty" json:"partial_refund_days,omitempty"`
	AdminFee          *float64 `yaml:"admin_fee,omitempty" json:"admin_fee,omitempty"`
	PartialRefundRate *float64 `yaml:"partial_refund_rate,omitempty" json:"partial_refund_rate,omitempty"`
	PartialCreditRate *float64 `yaml:"partial_credit_rate,omitempty" json:"partial_credit_rate,omitempty"`
	LateCreditRate    *float64 `yaml:"late_credit_rate,omitempty" json:"late_credit_rate,omitempty"`
	ChangeFee         *float64 `yaml:"change_fee,omitempty" json:"change_fee,omitempty"`
	HighShiftDays     *int     `yaml:"high_shift_days,omitempty" json:"high_shift_days,omitempty"`
}

type ReadinessDocument struct {
	Availability *int `yaml:"availability,omitempty" json:"availability,omitempty"`
	AmenityMatch *int `yaml:"amenity_match,omitempty" json:"amenity_match,omitempty"`
	NoPreference *int `yaml:"no_preference,omitempty" json:"no_preference,omitempty"`
	Rules        *int `yaml:"rules,omitempty" json:"rules,omitempty"`
	HighBand     *int `yaml:"high_band,omitempty" json:"high_band,omitempty"`
	MediumBand   *int `yaml:"medium_band,omitempty" json:"medium_band,omitempty"`
}

type SearchDocument struct {
	ScanDays            *int `yaml:"scan_days,omitempty" json:"scan_days,omitempty"`
	MaxAlternatives     *int `yaml:"max_alternatives,omitempty" json:"max_alternatives,omitempty"`
	AreasPerAlternative *int `yaml:"areas_per_alternative,omitempty" json:"areas_per_alternative,omitempty"`
	MaxRecommended      *int `yaml:"max_recommended,omitempty" json:"max_recommended,omitempty"`
}

// GuidanceDocument replaces the tier lists wholesale when they are given.
type GuidanceDocument struct {
	WindowDays *int              `yaml:"window_days,omitempty" json:"window_days,omitempty"`
	Raise      []RaiseTierDoc    `yaml:"raise,omitempty" json:"raise,omitempty"`
	Discount   []DiscountTierDoc `yaml:"discount,omitempty" json:"discount,omitempty"`
}

type RaiseTierDoc struct {
	MinOccupancyPct float64 `yaml:"min_occupancy_pct" json:"min_occupancy_pct"`
	ChangePct       int     `yaml:"change_pct" json:"change_pct"`
}

type DiscountTierDoc struct {
	BelowOccupancyPct float64 `yaml:"below_occupancy_pct" json:"below_occupancy_pct"`
	ChangePct         int     `yaml:"change_pct" json:"change_pct"`
}

// =============================================================================
// POLICY FACTORY
// =============================================================================

// PolicyFactory converts policy documents to a Catalog and Policy.
type PolicyFactory struct{}

// NewPolicyFactory creates a new policy factory.
func NewPolicyFactory() *PolicyFactory {
	return &PolicyFactory{}
}

// LoadFile reads and parses a policy document from disk.
func (f *PolicyFactory) LoadFile(path string) (*booking.Catalog, booking.Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, booking.Policy{}, fmt.Errorf("failed to read policy file: %w", err)
	}
	return f.Parse(data)
}

// Parse decodes a YAML or JSON document and overlays it on the defaults.
// An empty document yields the defaults unchanged.
func (f *PolicyFactory) Parse(data []byte) (*booking.Catalog, booking.Policy, error) {
	var doc PolicyDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, booking.Policy{}, fmt.Errorf("failed to parse policy document: %w", err)
	}
	return f.FromDocument(doc)
}

// FromDocument validates doc and builds the catalog and policy it describes.
func (f *PolicyFactory) FromDocument(doc PolicyDocument) (*booking.Catalog, booking.Policy, error) {
	catalog, err := buildCatalog(doc.Areas)
	if err != nil {
		return nil, booking.Policy{}, err
	}

	policy := booking.DefaultPolicy()
	if doc.Stay != nil {
		applyStay(&policy.Stay, *doc.Stay)
	}
	if doc.Pricing != nil {
		applyPricing(&policy.Pricing, *doc.Pricing)
	}
	if doc.Cancellation != nil {
		applyCancellation(&policy.Cancellation, *doc.Cancellation)
	}
	if doc.Readiness != nil {
		applyReadiness(&policy.Readiness, *doc.Readiness)
	}
	if doc.Search != nil {
		applySearch(&policy.Search, *doc.Search)
	}
	if doc.Guidance != nil {
		applyGuidance(&policy.Guidance, *doc.Guidance)
	}

	if err := validatePolicy(policy); err != nil {
		return nil, booking.Policy{}, err
	}
	return catalog, policy, nil
}

// ToDocument renders a catalog and policy as a fully populated document.
func (f *PolicyFactory) ToDocument(catalog *booking.Catalog, policy booking.Policy) PolicyDocument {
	doc := PolicyDocument{}
	for _, a := range catalog.Areas() {
		doc.Areas = append(doc.Areas, AreaDocument{
			Key:            string(a.Key),
			Label:          ptr(a.Label),
			CapacityUnits:  ptr(a.CapacityUnits),
			BaseRate:       ptr(a.BaseRatePerNight.Value.InexactFloat64()),
			MaxPartySize:   ptr(a.MaxPartySize),
			IncludedGuests: ptr(a.IncludedGuests),
			CleaningFee:    ptr(a.CleaningFee.Value.InexactFloat64()),
			Amenities:      a.Amenities,
			Aliases:        a.Aliases,
		})
	}

	s := policy.Stay
	doc.Stay = &StayDocument{
		MinNightsWeekend:  ptr(s.MinNightsWeekend),
		MaxNights:         ptr(s.MaxNights),
		MaxPartySize:      ptr(s.MaxPartySizeAbsolute),
		SameDayCutoffHour: ptr(s.SameDayCutoffHour),
	}

	p := policy.Pricing
	doc.Pricing = &PricingDocument{
		ExtraGuestFee:  ptr(p.ExtraGuestFeePerNight.Value.InexactFloat64()),
		SiteLockFee:    ptr(p.SiteLockFee.Value.InexactFloat64()),
		ServiceFeeRate: ptr(p.ServiceFeeRate.Float64()),
		TaxRate:        ptr(p.TaxRate.Float64()),
		DepositRate:    ptr(p.DepositRate.Float64()),
	}

	c := policy.Cancellation
	doc.Cancellation = &CancellationDocument{
		FullRefundDays:    ptr(c.FullRefundDays),
		PartialRefundDays: ptr(c.PartialRefundDays),
		AdminFee:          ptr(c.AdminFee.Value.InexactFloat64()),
		PartialRefundRate: ptr(c.PartialRefundRate.Float64()),
		PartialCreditRate: ptr(c.PartialCreditRate.Float64()),
		LateCreditRate:    ptr(c.LateCreditRate.Float64()),
		ChangeFee:         ptr(c.ChangeFee.Value.InexactFloat64()),
		HighShiftDays:     ptr(c.HighShiftDays),
	}

	r := policy.Readiness
	doc.Readiness = &ReadinessDocument{
		Availability: ptr(r.Availability),
		AmenityMatch: ptr(r.AmenityMatch),
		NoPreference: ptr(r.NoPreference),
		Rules:        ptr(r.Rules),
		HighBand:     ptr(r.HighBand),
		MediumBand:   ptr(r.MediumBand),
	}

	sp := policy.Search
	doc.Search = &SearchDocument{
		ScanDays:            ptr(sp.ScanDays),
		MaxAlternatives:     ptr(sp.MaxAlternatives),
		AreasPerAlternative: ptr(sp.AreasPerAlternative),
		MaxRecommended:      ptr(sp.MaxRecommended),
	}

	g := &GuidanceDocument{WindowDays: ptr(policy.Guidance.WindowDays)}
	for _, t := range policy.Guidance.RaiseTiers {
		g.Raise = append(g.Raise, RaiseTierDoc{MinOccupancyPct: t.MinOccupancyPct, ChangePct: t.ChangePct})
	}
	for _, t := range policy.Guidance.DiscountTiers {
		g.Discount = append(g.Discount, DiscountTierDoc{BelowOccupancyPct: t.BelowOccupancyPct, ChangePct: t.ChangePct})
	}
	doc.Guidance = g

	return doc
}

// Marshal encodes doc as YAML.
func (f *PolicyFactory) Marshal(doc PolicyDocument) ([]byte, error) {
	return yaml.Marshal(doc)
}

// =============================================================================
// CATALOG
// =============================================================================

func buildCatalog(overlays []AreaDocument) (*booking.Catalog, error) {
	areas := booking.DefaultCatalog().Areas()
	index := make(map[booking.AreaKey]int, len(areas))
	for i, a := range areas {
		index[a.Key] = i
	}

	seen := make(map[booking.AreaKey]bool)
	for i, ad := range overlays {
		field := fmt.Sprintf("areas[%d]", i)
		key := booking.AreaKey(strings.ToLower(strings.TrimSpace(ad.Key)))
		if !key.IsKnown() {
			return nil, &generic.ConfigError{Field: field + ".key", Message: fmt.Sprintf("unknown area %q", ad.Key)}
		}
		if seen[key] {
			return nil, &generic.ConfigError{Field: field + ".key", Message: fmt.Sprintf("area %q listed twice", key)}
		}
		seen[key] = true

		a := areas[index[key]]
		if ad.Label != nil {
			a.Label = *ad.Label
		}
		if ad.CapacityUnits != nil {
			a.CapacityUnits = *ad.CapacityUnits
		}
		if ad.BaseRate != nil {
			a.BaseRatePerNight = money(*ad.BaseRate)
		}
		if ad.MaxPartySize != nil {
			a.MaxPartySize = *ad.MaxPartySize
		}
		if ad.IncludedGuests != nil {
			a.IncludedGuests = *ad.IncludedGuests
		}
		if ad.CleaningFee != nil {
			a.CleaningFee = money(*ad.CleaningFee)
		}
		if ad.Amenities != nil {
			a.Amenities = normalizeList(ad.Amenities)
		}
		if ad.Aliases != nil {
			a.Aliases = normalizeList(ad.Aliases)
		}

		if err := validateArea(field, a); err != nil {
			return nil, err
		}
		areas[index[key]] = a
	}

	return booking.NewCatalog(areas), nil
}

func validateArea(field string, a booking.AreaConfig) error {
	switch {
	case a.CapacityUnits < 1:
		return &generic.ConfigError{Field: field + ".capacity_units", Message: "must be at least 1"}
	case a.MaxPartySize < 1:
		return &generic.ConfigError{Field: field + ".max_party_size", Message: "must be at least 1"}
	case a.IncludedGuests < 0:
		return &generic.ConfigError{Field: field + ".included_guests", Message: "must not be negative"}
	case a.BaseRatePerNight.IsNegative():
		return &generic.ConfigError{Field: field + ".base_rate", Message: "must not be negative"}
	case a.CleaningFee.IsNegative():
		return &generic.ConfigError{Field: field + ".cleaning_fee", Message: "must not be negative"}
	}
	for _, alias := range a.Aliases {
		if booking.AreaKey(alias).IsKnown() && booking.AreaKey(alias) != a.Key {
			return &generic.ConfigError{Field: field + ".aliases", Message: fmt.Sprintf("alias %q shadows an area key", alias)}
		}
	}
	return nil
}

// =============================================================================
// POLICY SECTIONS
// =============================================================================

func applyStay(s *booking.StayRules, d StayDocument) {
	setInt(&s.MinNightsWeekend, d.MinNightsWeekend)
	setInt(&s.MaxNights, d.MaxNights)
	setInt(&s.MaxPartySizeAbsolute, d.MaxPartySize)
	setInt(&s.SameDayCutoffHour, d.SameDayCutoffHour)
}

func applyPricing(p *booking.PricingPolicy, d PricingDocument) {
	setMoney(&p.ExtraGuestFeePerNight, d.ExtraGuestFee)
	setMoney(&p.SiteLockFee, d.SiteLockFee)
	setRate(&p.ServiceFeeRate, d.ServiceFeeRate)
	setRate(&p.TaxRate, d.TaxRate)
	setRate(&p.DepositRate, d.DepositRate)
}

func applyCancellation(c *booking.CancellationPolicy, d CancellationDocument) {
	setInt(&c.FullRefundDays, d.FullRefundDays)
	setInt(&c.PartialRefundDays, d.PartialRefundDays)
	setMoney(&c.AdminFee, d.AdminFee)
	setRate(&c.PartialRefundRate, d.PartialRefundRate)
	setRate(&c.PartialCreditRate, d.PartialCreditRate)
	setRate(&c.LateCreditRate, d.LateCreditRate)
	setMoney(&c.ChangeFee, d.ChangeFee)
	setInt(&c.HighShiftDays, d.HighShiftDays)
}

func applyReadiness(r *booking.ReadinessWeights, d ReadinessDocument) {
	setInt(&r.Availability, d.Availability)
	setInt(&r.AmenityMatch, d.AmenityMatch)
	setInt(&r.NoPreference, d.NoPreference)
	setInt(&r.Rules, d.Rules)
	setInt(&r.HighBand, d.HighBand)
	setInt(&r.MediumBand, d.MediumBand)
}

func applySearch(s *booking.SearchPolicy, d SearchDocument) {
	setInt(&s.ScanDays, d.ScanDays)
	setInt(&s.MaxAlternatives, d.MaxAlternatives)
	setInt(&s.AreasPerAlternative, d.AreasPerAlternative)
	setInt(&s.MaxRecommended, d.MaxRecommended)
}

func applyGuidance(g *booking.GuidancePolicy, d GuidanceDocument) {
	setInt(&g.WindowDays, d.WindowDays)
	if d.Raise != nil {
		g.RaiseTiers = nil
		for _, t := range d.Raise {
			g.RaiseTiers = append(g.RaiseTiers, booking.RaiseTier{MinOccupancyPct: t.MinOccupancyPct, ChangePct: t.ChangePct})
		}
	}
	if d.Discount != nil {
		g.DiscountTiers = nil
		for _, t := range d.Discount {
			g.DiscountTiers = append(g.DiscountTiers, booking.DiscountTier{BelowOccupancyPct: t.BelowOccupancyPct, ChangePct: t.ChangePct})
		}
	}
}

func validatePolicy(p booking.Policy) error {
	ints := []struct {
		field string
		value int
		min   int
	}{
		{"stay.min_nights_weekend", p.Stay.MinNightsWeekend, 1},
		{"stay.max_nights", p.Stay.MaxNights, 1},
		{"stay.max_party_size", p.Stay.MaxPartySizeAbsolute, 1},
		{"stay.same_day_cutoff_hour", p.Stay.SameDayCutoffHour, 0},
		{"cancellation.full_refund_days", p.Cancellation.FullRefundDays, 0},
		{"cancellation.partial_refund_days", p.Cancellation.PartialRefundDays, 0},
		{"cancellation.high_shift_days", p.Cancellation.HighShiftDays, 0},
		{"readiness.availability", p.Readiness.Availability, 0},
		{"readiness.amenity_match", p.Readiness.AmenityMatch, 0},
		{"readiness.no_preference", p.Readiness.NoPreference, 0},
		{"readiness.rules", p.Readiness.Rules, 0},
		{"search.scan_days", p.Search.ScanDays, 1},
		{"search.max_alternatives", p.Search.MaxAlternatives, 0},
		{"search.areas_per_alternative", p.Search.AreasPerAlternative, 1},
		{"search.max_recommended", p.Search.MaxRecommended, 0},
		{"guidance.window_days", p.Guidance.WindowDays, 1},
	}
	for _, c := range ints {
		if c.value < c.min {
			return &generic.ConfigError{Field: c.field, Message: fmt.Sprintf("must be at least %d", c.min)}
		}
	}

	if p.Stay.SameDayCutoffHour > 23 {
		return &generic.ConfigError{Field: "stay.same_day_cutoff_hour", Message: "must be an hour between 0 and 23"}
	}
	if p.Cancellation.PartialRefundDays > p.Cancellation.FullRefundDays {
		return &generic.ConfigError{Field: "cancellation.partial_refund_days", Message: "must not exceed full_refund_days"}
	}
	if p.Readiness.MediumBand > p.Readiness.HighBand {
		return &generic.ConfigError{Field: "readiness.medium_band", Message: "must not exceed high_band"}
	}

	monies := map[string]generic.Money{
		"pricing.extra_guest_fee": p.Pricing.ExtraGuestFeePerNight,
		"pricing.site_lock_fee":   p.Pricing.SiteLockFee,
		"cancellation.admin_fee":  p.Cancellation.AdminFee,
		"cancellation.change_fee": p.Cancellation.ChangeFee,
	}
	for field, m := range monies {
		if m.IsNegative() {
			return &generic.ConfigError{Field: field, Message: "must not be negative"}
		}
	}

	rates := map[string]generic.Rate{
		"pricing.service_fee_rate":         p.Pricing.ServiceFeeRate,
		"pricing.tax_rate":                 p.Pricing.TaxRate,
		"pricing.deposit_rate":             p.Pricing.DepositRate,
		"cancellation.partial_refund_rate": p.Cancellation.PartialRefundRate,
		"cancellation.partial_credit_rate": p.Cancellation.PartialCreditRate,
		"cancellation.late_credit_rate":    p.Cancellation.LateCreditRate,
	}
	for field, r := range rates {
		if r.IsNegative() || r.Value.GreaterThan(decimal.NewFromInt(1)) {
			return &generic.ConfigError{Field: field, Message: "must be between 0 and 1"}
		}
	}
	return nil
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setMoney(dst *generic.Money, v *float64) {
	if v != nil {
		*dst = money(*v)
	}
}

func setRate(dst *generic.Rate, v *float64) {
	if v != nil {
		*dst = generic.NewRate(*v)
	}
}

func money(v float64) generic.Money { return generic.NewMoney(v) }

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func ptr[T any](v T) *T { return &v }
