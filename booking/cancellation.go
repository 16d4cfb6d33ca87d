/*
cancellation.go - Cancellation windows and change impact

PURPOSE:
  Two price-only previews keyed off a known booking total:

  CancellationWindows: the calendar dates at which a trip's refund tier
  changes, with an example amount for each tier.

  PreviewManageImpact: what cancelling the CURRENT booking would return
  today, plus the fee and risk of moving it to a proposed itinerary.

TIERS (days from today until the current arrival):
  >= FullRefundDays (14)        full_refund_window      refund total-10, fee 10
  >= PartialRefundDays (7)      partial_refund_window   refund 50%-10, credit 40%, fee 10
  otherwise                     non_refundable_window   credit 30%

NOTE:
  The tier always comes from the current start date, never the proposed
  one. A past arrival is still evaluated (it lands in the last tier) and is
  reported with Eligible=false.
*/
package booking

import "github.com/robbyrobaz/campsite-crm/generic"

// PolicyBand names a cancellation tier.
type PolicyBand string

const (
	BandFullRefund    PolicyBand = "full_refund_window"
	BandPartialRefund PolicyBand = "partial_refund_window"
	BandNonRefundable PolicyBand = "non_refundable_window"
)

// ChangeRisk classifies how far a date change moves the stay.
type ChangeRisk string

const (
	RiskSameItinerary ChangeRisk = "same_itinerary"
	RiskMinorShift    ChangeRisk = "minor_shift"
	RiskHighShift     ChangeRisk = "high_shift"
)

// =============================================================================
// CANCELLATION WINDOWS
// =============================================================================

// CancellationSchedule lists the refund tier boundaries for one trip.
type CancellationSchedule struct {
	TripStart              generic.TimePoint
	EstimatedTotal         generic.Money
	FullRefundOnOrBefore   generic.TimePoint
	PartialRefundStart     generic.TimePoint
	PartialRefundEnd       generic.TimePoint
	NonRefundableOnOrAfter generic.TimePoint
	AdminFee               generic.Money
	FullRefundAmount       generic.Money
	PartialRefundAmount    generic.Money
	NonRefundableAmount    generic.Money
}

// CancellationWindows returns the refund schedule for a trip.
func CancellationWindows(policy CancellationPolicy, tripStart generic.TimePoint, total generic.Money) CancellationSchedule {
	total = total.NonNegative()
	fullDeadline := tripStart.AddDays(-policy.FullRefundDays)
	partialDeadline := tripStart.AddDays(-policy.PartialRefundDays)

	return CancellationSchedule{
		TripStart:              tripStart,
		EstimatedTotal:         total,
		FullRefundOnOrBefore:   fullDeadline,
		PartialRefundStart:     fullDeadline.AddDays(1),
		PartialRefundEnd:       partialDeadline,
		NonRefundableOnOrAfter: partialDeadline.AddDays(1),
		AdminFee:               policy.AdminFee,
		FullRefundAmount:       total.Sub(policy.AdminFee).NonNegative(),
		PartialRefundAmount:    total.MulRate(policy.PartialRefundRate).Sub(policy.AdminFee).NonNegative(),
		NonRefundableAmount:    generic.ZeroMoney(),
	}
}

// =============================================================================
// MANAGE IMPACT
// =============================================================================

// ManageRequest describes a current booking and a proposed change to it.
type ManageRequest struct {
	CurrentStart   generic.TimePoint
	CurrentNights  int
	ProposedStart  generic.TimePoint
	ProposedNights int
	Total          generic.Money
}

// CancellationOutcome is what cancelling today would return.
type CancellationOutcome struct {
	DaysUntilArrival int
	Eligible         bool
	Refund           generic.Money
	Credit           generic.Money
	Fees             generic.Money
	Band             PolicyBand
}

// ChangeOutcome prices moving to the proposed itinerary.
type ChangeOutcome struct {
	Changed   bool
	ShiftDays int
	ChangeFee generic.Money
	Risk      ChangeRisk
}

type ManageImpact struct {
	Request      ManageRequest
	Change       ChangeOutcome
	Cancellation CancellationOutcome
}

// EvaluateCancellation applies the tier for daysUntilArrival to total.
func EvaluateCancellation(policy CancellationPolicy, daysUntilArrival int, total generic.Money) CancellationOutcome {
	total = total.NonNegative()
	out := CancellationOutcome{
		DaysUntilArrival: daysUntilArrival,
		Eligible:         daysUntilArrival >= 0,
		Refund:           generic.ZeroMoney(),
		Credit:           generic.ZeroMoney(),
		Fees:             generic.ZeroMoney(),
	}

	switch {
	case daysUntilArrival >= policy.FullRefundDays:
		out.Refund = total.Sub(policy.AdminFee).NonNegative()
		out.Fees = policy.AdminFee
		out.Band = BandFullRefund
	case daysUntilArrival >= policy.PartialRefundDays:
		out.Refund = total.MulRate(policy.PartialRefundRate).Sub(policy.AdminFee).NonNegative()
		out.Credit = total.MulRate(policy.PartialCreditRate)
		out.Fees = policy.AdminFee
		out.Band = BandPartialRefund
	default:
		out.Credit = total.MulRate(policy.LateCreditRate)
		out.Band = BandNonRefundable
	}
	return out
}

// PreviewManageImpact evaluates cancelling the current booking as of today
// and the cost of moving it to the proposed dates.
func PreviewManageImpact(policy CancellationPolicy, today generic.TimePoint, req ManageRequest) ManageImpact {
	req.Total = req.Total.NonNegative()

	shift := generic.AbsDays(req.CurrentStart, req.ProposedStart)
	changed := !req.ProposedStart.Equal(req.CurrentStart) || req.ProposedNights != req.CurrentNights

	change := ChangeOutcome{
		Changed:   changed,
		ShiftDays: shift,
		ChangeFee: generic.ZeroMoney(),
		Risk:      RiskSameItinerary,
	}
	if changed {
		change.ChangeFee = policy.ChangeFee
	}
	switch {
	case shift >= policy.HighShiftDays:
		change.Risk = RiskHighShift
	case shift > 0:
		change.Risk = RiskMinorShift
	}

	return ManageImpact{
		Request:      req,
		Change:       change,
		Cancellation: EvaluateCancellation(policy, generic.DaysBetween(today, req.CurrentStart), req.Total),
	}
}
