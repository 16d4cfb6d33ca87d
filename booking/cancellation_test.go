package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/robbyrobaz/campsite-crm/booking"
	"github.com/robbyrobaz/campsite-crm/generic"
)

// =============================================================================
// CANCELLATION WINDOW TESTS
// =============================================================================

func TestCancellationWindows_Boundaries(t *testing.T) {
	// GIVEN: A July 1 trip costing $300
	sched := booking.CancellationWindows(booking.DefaultPolicy().Cancellation, day(2024, time.July, 1), generic.NewMoneyFromInt(300))

	// THEN: Tier boundaries fall 14 and 7 days out
	assert.Equal(t, "2024-06-17", sched.FullRefundOnOrBefore.String())
	assert.Equal(t, "2024-06-18", sched.PartialRefundStart.String())
	assert.Equal(t, "2024-06-24", sched.PartialRefundEnd.String())
	assert.Equal(t, "2024-06-25", sched.NonRefundableOnOrAfter.String())

	assert.Equal(t, "290.00", sched.FullRefundAmount.Round().String())
	assert.Equal(t, "140.00", sched.PartialRefundAmount.Round().String())
	assert.Equal(t, "0.00", sched.NonRefundableAmount.Round().String())
	assert.Equal(t, "10.00", sched.AdminFee.Round().String())
}

func TestCancellationWindows_SmallTotalsNeverGoNegative(t *testing.T) {
	sched := booking.CancellationWindows(booking.DefaultPolicy().Cancellation, day(2024, time.July, 1), generic.NewMoneyFromInt(8))

	assert.True(t, sched.FullRefundAmount.IsZero())
	assert.True(t, sched.PartialRefundAmount.IsZero())
}

// =============================================================================
// CANCELLATION TIER TESTS
// =============================================================================

func TestEvaluateCancellation_Tiers(t *testing.T) {
	policy := booking.DefaultPolicy().Cancellation
	total := generic.NewMoneyFromInt(200)

	tests := []struct {
		name   string
		days   int
		band   booking.PolicyBand
		refund string
		credit string
		fees   string
	}{
		{"fourteen days is full refund", 14, booking.BandFullRefund, "190.00", "0.00", "10.00"},
		{"thirteen days is partial", 13, booking.BandPartialRefund, "90.00", "80.00", "10.00"},
		{"seven days is still partial", 7, booking.BandPartialRefund, "90.00", "80.00", "10.00"},
		{"six days is non-refundable", 6, booking.BandNonRefundable, "0.00", "60.00", "0.00"},
		{"arrival day", 0, booking.BandNonRefundable, "0.00", "60.00", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := booking.EvaluateCancellation(policy, tt.days, total)
			assert.Equal(t, tt.band, out.Band)
			assert.Equal(t, tt.refund, out.Refund.Round().String())
			assert.Equal(t, tt.credit, out.Credit.Round().String())
			assert.Equal(t, tt.fees, out.Fees.Round().String())
			assert.True(t, out.Eligible)
		})
	}
}

func TestEvaluateCancellation_PastArrivalIsIneligibleButPriced(t *testing.T) {
	out := booking.EvaluateCancellation(booking.DefaultPolicy().Cancellation, -2, generic.NewMoneyFromInt(200))

	assert.False(t, out.Eligible)
	assert.Equal(t, -2, out.DaysUntilArrival)
	assert.Equal(t, booking.BandNonRefundable, out.Band)
	assert.Equal(t, "60.00", out.Credit.Round().String())
}

// =============================================================================
// MANAGE IMPACT TESTS
// =============================================================================

func TestPreviewManageImpact_ChangeRisk(t *testing.T) {
	policy := booking.DefaultPolicy().Cancellation
	today := june(1)
	total := generic.NewMoneyFromInt(200)

	tests := []struct {
		name     string
		proposed generic.TimePoint
		nights   int
		changed  bool
		shift    int
		risk     booking.ChangeRisk
		fee      string
	}{
		{"same itinerary", june(20), 2, false, 0, booking.RiskSameItinerary, "0.00"},
		{"longer stay same day", june(20), 3, true, 0, booking.RiskSameItinerary, "15.00"},
		{"five days later", june(25), 2, true, 5, booking.RiskMinorShift, "15.00"},
		{"six days earlier", june(14), 2, true, 6, booking.RiskMinorShift, "15.00"},
		{"a week later", june(27), 2, true, 7, booking.RiskHighShift, "15.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			impact := booking.PreviewManageImpact(policy, today, booking.ManageRequest{
				CurrentStart:   june(20),
				CurrentNights:  2,
				ProposedStart:  tt.proposed,
				ProposedNights: tt.nights,
				Total:          total,
			})
			assert.Equal(t, tt.changed, impact.Change.Changed)
			assert.Equal(t, tt.shift, impact.Change.ShiftDays)
			assert.Equal(t, tt.risk, impact.Change.Risk)
			assert.Equal(t, tt.fee, impact.Change.ChangeFee.Round().String())
		})
	}
}

func TestPreviewManageImpact_TierFollowsCurrentBooking(t *testing.T) {
	// GIVEN: A booking 19 days out, proposed to move 3 days from today
	// WHEN: Previewing the change
	// THEN: Cancellation is still evaluated against the current arrival,
	// not the proposed one
	impact := booking.PreviewManageImpact(booking.DefaultPolicy().Cancellation, june(1), booking.ManageRequest{
		CurrentStart:   june(20),
		CurrentNights:  2,
		ProposedStart:  june(4),
		ProposedNights: 2,
		Total:          generic.NewMoneyFromInt(200),
	})

	assert.Equal(t, 19, impact.Cancellation.DaysUntilArrival)
	assert.Equal(t, booking.BandFullRefund, impact.Cancellation.Band)
	assert.Equal(t, booking.RiskHighShift, impact.Change.Risk)
	assert.Equal(t, 16, impact.Change.ShiftDays)
}

func TestPreviewManageImpact_NegativeTotalTreatedAsZero(t *testing.T) {
	impact := booking.PreviewManageImpact(booking.DefaultPolicy().Cancellation, june(1), booking.ManageRequest{
		CurrentStart:   june(20),
		CurrentNights:  1,
		ProposedStart:  june(20),
		ProposedNights: 1,
		Total:          generic.NewMoneyFromInt(-50),
	})

	assert.True(t, impact.Request.Total.IsZero())
	assert.True(t, impact.Cancellation.Refund.IsZero())
}
