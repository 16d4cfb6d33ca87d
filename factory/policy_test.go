package factory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyrobaz/campsite-crm/booking"
	"github.com/robbyrobaz/campsite-crm/factory"
	"github.com/robbyrobaz/campsite-crm/generic"
)

func TestParse_EmptyDocumentIsDefaults(t *testing.T) {
	f := factory.NewPolicyFactory()

	catalog, policy, err := f.Parse(nil)

	require.NoError(t, err)
	assert.Equal(t, booking.DefaultPolicy(), policy)
	assert.Equal(t, booking.DefaultCatalog().Areas(), catalog.Areas())
}

func TestParse_YAMLOverlay(t *testing.T) {
	// GIVEN: A document changing the cabin, the tax rate and the weekend minimum
	doc := `
areas:
  - key: Cabin
    capacity_units: 10
    base_rate: 125.5
    amenities: [Heating, " Hot Tub "]
    aliases: [cabins]
stay:
  min_nights_weekend: 3
pricing:
  tax_rate: 0.09
guidance:
  raise: [{min_occupancy_pct: 90, change_pct: 15}]
`
	f := factory.NewPolicyFactory()

	// WHEN
	catalog, policy, err := f.Parse([]byte(doc))

	// THEN: Overlaid fields change, the rest keep their defaults
	require.NoError(t, err)

	cabin, ok := catalog.Lookup(booking.AreaCabin)
	require.True(t, ok)
	assert.Equal(t, 10, cabin.CapacityUnits)
	assert.Equal(t, "125.50", cabin.BaseRatePerNight.String())
	assert.Equal(t, 8, cabin.MaxPartySize)
	assert.Equal(t, []string{"heating", "hot tub"}, cabin.Amenities)
	assert.Equal(t, booking.AreaCabin, catalog.NormalizeAreaKey("Cabins"))

	assert.Equal(t, 3, policy.Stay.MinNightsWeekend)
	assert.Equal(t, 21, policy.Stay.MaxNights)
	assert.Equal(t, "0.09", policy.Pricing.TaxRate.String())
	assert.Equal(t, "0.06", policy.Pricing.ServiceFeeRate.String())
	assert.Equal(t, []booking.RaiseTier{{MinOccupancyPct: 90, ChangePct: 15}}, policy.Guidance.RaiseTiers)
	assert.Len(t, policy.Guidance.DiscountTiers, 2, "discount tiers untouched")

	assert.Equal(t, booking.DefaultCatalog().Len(), catalog.Len())
}

func TestParse_AcceptsJSON(t *testing.T) {
	f := factory.NewPolicyFactory()

	_, policy, err := f.Parse([]byte(`{"cancellation": {"admin_fee": 5, "full_refund_days": 21}}`))

	require.NoError(t, err)
	assert.Equal(t, "5.00", policy.Cancellation.AdminFee.String())
	assert.Equal(t, 21, policy.Cancellation.FullRefundDays)
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"unknown area", "areas: [{key: yurt}]", "areas[0].key"},
		{"duplicate area", "areas: [{key: tent}, {key: tent}]", "areas[1].key"},
		{"zero capacity", "areas: [{key: barn, capacity_units: 0}]", "areas[0].capacity_units"},
		{"negative rate", "areas: [{key: barn, base_rate: -1}]", "areas[0].base_rate"},
		{"alias shadows key", "areas: [{key: mixed, aliases: [cabin]}]", "areas[0].aliases"},
		{"zero max nights", "stay: {max_nights: 0}", "stay.max_nights"},
		{"cutoff past midnight", "stay: {same_day_cutoff_hour: 24}", "stay.same_day_cutoff_hour"},
		{"inverted tiers", "cancellation: {partial_refund_days: 20}", "cancellation.partial_refund_days"},
		{"tax above one", "pricing: {tax_rate: 1.5}", "pricing.tax_rate"},
		{"negative fee", "pricing: {site_lock_fee: -2}", "pricing.site_lock_fee"},
		{"inverted bands", "readiness: {medium_band: 80}", "readiness.medium_band"},
	}

	f := factory.NewPolicyFactory()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := f.Parse([]byte(tt.doc))

			require.Error(t, err)
			assert.ErrorIs(t, err, generic.ErrInvalidConfig)
			var cfgErr *generic.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	f := factory.NewPolicyFactory()

	_, _, err := f.Parse([]byte("pricing: {taxrate: 0.1}"))

	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campground.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search: {scan_days: 45}\n"), 0o600))
	f := factory.NewPolicyFactory()

	_, policy, err := f.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 45, policy.Search.ScanDays)

	_, _, err = f.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestToDocument_RoundTrip(t *testing.T) {
	// GIVEN: A non-default policy rendered back to a document
	f := factory.NewPolicyFactory()
	catalog, policy, err := f.Parse([]byte("pricing: {deposit_rate: 0.3}\nareas: [{key: tent, capacity_units: 25}]"))
	require.NoError(t, err)

	// WHEN: The rendered document is parsed again
	data, err := f.Marshal(f.ToDocument(catalog, policy))
	require.NoError(t, err)
	catalog2, policy2, err := f.Parse(data)

	// THEN: The same configuration comes back
	require.NoError(t, err)
	assert.Equal(t, policy.Stay, policy2.Stay)
	assert.Equal(t, policy.Search, policy2.Search)
	assert.Equal(t, "0.3", policy2.Pricing.DepositRate.String())
	tent, _ := catalog2.Lookup(booking.AreaTent)
	assert.Equal(t, 25, tent.CapacityUnits)
	assert.Equal(t, catalog.NormalizeAreaKey("tent site"), catalog2.NormalizeAreaKey("tent site"))
}
