/*
pricing.go - Stay cost estimate

PURPOSE:
  Prices a stay: lodging, extra guests, add-ons, optional site lock, service
  fee, cleaning fee and tax, then splits the total into the deposit due today
  and the remaining balance.

FORMULA:
  extraGuests = max(partySize - includedGuests, 0)
  baseLodging = baseRate × nights
  extraGuest  = extraGuests × ExtraGuestFeePerNight × nights
  serviceFee  = ServiceFeeRate × (baseLodging + addOns)
  tax         = TaxRate × (baseLodging + addOns + serviceFee + cleaning + extraGuest + siteLock)
  total       = everything above
  deposit     = DepositRate × total

ROUNDING:
  Intermediate math keeps full decimal precision. Rounding to cents happens
  when the breakdown is rendered, so line items may not add up to the
  rounded total by a cent.
*/
package booking

import (
	"strings"

	"github.com/robbyrobaz/campsite-crm/generic"
)

// AddOnLine is an extra purchased with the stay (firewood, kayak rental...).
type AddOnLine struct {
	Name      string
	Price     generic.Money
	Quantity  int
	LineTotal generic.Money
}

// NewAddOnLine normalizes an add-on. Negative prices become zero and
// quantities below one become one. ok is false when name is blank.
func NewAddOnLine(name string, price generic.Money, quantity int) (AddOnLine, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return AddOnLine{}, false
	}
	price = price.NonNegative()
	if quantity < 1 {
		quantity = 1
	}
	return AddOnLine{
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		LineTotal: price.MulInt(quantity).Round(),
	}, true
}

// CostRequest is the input to EstimateCost.
type CostRequest struct {
	Area      AreaKey
	Nights    int
	PartySize int
	AddOns    []AddOnLine
	SiteLock  bool
}

// CostBreakdown is a priced stay. Amounts are unrounded; call Round on
// output.
type CostBreakdown struct {
	Area             AreaConfig
	Nights           int
	PartySize        int
	ExtraGuests      int
	BaseLodging      generic.Money
	ExtraGuestFee    generic.Money
	AddOnTotal       generic.Money
	AddOns           []AddOnLine
	SiteLockFee      generic.Money
	ServiceFee       generic.Money
	CleaningFee      generic.Money
	Tax              generic.Money
	TotalEstimate    generic.Money
	DepositDueToday  generic.Money
	RemainingBalance generic.Money
}

// EstimateCost prices a stay. Unknown areas are priced as mixed.
func EstimateCost(catalog *Catalog, pricing PricingPolicy, req CostRequest) CostBreakdown {
	area := catalog.Area(req.Area)
	nights := req.Nights
	if nights < 1 {
		nights = 1
	}
	party := req.PartySize
	if party < 1 {
		party = 1
	}

	extraGuests := party - area.IncludedGuests
	if extraGuests < 0 {
		extraGuests = 0
	}

	baseLodging := area.BaseRatePerNight.MulInt(nights)
	extraGuestTotal := pricing.ExtraGuestFeePerNight.MulInt(extraGuests).MulInt(nights)

	addOnTotal := generic.ZeroMoney()
	for _, a := range req.AddOns {
		addOnTotal = addOnTotal.Add(a.LineTotal)
	}

	siteLock := generic.ZeroMoney()
	if req.SiteLock {
		siteLock = pricing.SiteLockFee
	}

	serviceFee := baseLodging.Add(addOnTotal).MulRate(pricing.ServiceFeeRate)
	cleaning := area.CleaningFee
	taxable := generic.SumMoney(baseLodging, addOnTotal, serviceFee, cleaning, extraGuestTotal, siteLock)
	tax := taxable.MulRate(pricing.TaxRate)
	total := taxable.Add(tax)
	deposit := total.MulRate(pricing.DepositRate)

	return CostBreakdown{
		Area:             area,
		Nights:           nights,
		PartySize:        party,
		ExtraGuests:      extraGuests,
		BaseLodging:      baseLodging,
		ExtraGuestFee:    extraGuestTotal,
		AddOnTotal:       addOnTotal,
		AddOns:           req.AddOns,
		SiteLockFee:      siteLock,
		ServiceFee:       serviceFee,
		CleaningFee:      cleaning,
		Tax:              tax,
		TotalEstimate:    total,
		DepositDueToday:  deposit,
		RemainingBalance: total.Sub(deposit),
	}
}
