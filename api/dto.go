/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the booking engine's model from the external API contract, which the
  front desk UI already depends on (snake_case keys, money as plain numbers
  rounded to cents).

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Top-level response wrappers

TYPES:
  Availability:
    AvailabilityResponse, SearchDTO, AvailabilityRowDTO, AlternativeDateDTO

  Pricing:
    CostEstimateRequest, CostEstimateResponse, LineItemsDTO

  Rules and readiness:
    StayRulesResponse, StayRulesSearchDTO, ReadinessResponse

  Cancellation:
    ManagePreviewRequest, ManagePreviewResponse, CancellationPreviewResponse

  Alerts:
    CreateAlertRequest, AlertDTO, CreateAlertResponse

  Catalog and guidance:
    AreaDTO, PricingGuidanceResponse

VALIDATION:
  Request bodies are decoded leniently (see params.go). DTOs are pure data
  carriers; conversion from engine types lives in the to*DTO helpers below.

SEE ALSO:
  - handlers.go: Uses these types
  - params.go: Lenient request decoding
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/robbyrobaz/campsite-crm/booking"
	"github.com/robbyrobaz/campsite-crm/generic"
)

// =============================================================================
// AVAILABILITY
// =============================================================================

// SearchDTO echoes the normalized search back to the client.
type SearchDTO struct {
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date,omitempty"`
	Nights         int      `json:"nights"`
	PartySize      int      `json:"party_size"`
	Amenities      []string `json:"amenities"`
	AreaPreference *string  `json:"area_preference"`
}

// StayRulesSearchDTO echoes the inputs the stay rules were checked against.
type StayRulesSearchDTO struct {
	StartDate string `json:"start_date"`
	Nights    int    `json:"nights"`
	PartySize int    `json:"party_size"`
}

type AvailabilityRowDTO struct {
	AreaKey           string   `json:"area_key"`
	AreaName          string   `json:"area_name"`
	CapacityUnits     int      `json:"capacity_units"`
	BookedUnits       int      `json:"booked_units"`
	RemainingUnits    int      `json:"remaining_units"`
	Available         bool     `json:"available"`
	MaxPartySize      int      `json:"max_party_size"`
	BaseRate          float64  `json:"base_rate"`
	Amenities         []string `json:"amenities"`
	AmenityMatchCount int      `json:"amenity_match_count"`
	AmenityMatchPct   float64  `json:"amenity_match_pct"`
}

type AlternativeDateDTO struct {
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	AvailableAreas []string `json:"available_areas"`
}

type AvailabilityResponse struct {
	Search           SearchDTO            `json:"search"`
	Availability     []AvailabilityRowDTO `json:"availability"`
	RecommendedAreas []AvailabilityRowDTO `json:"recommended_areas"`
	AlternativeDates []AlternativeDateDTO `json:"alternative_dates"`
}

// =============================================================================
// COST ESTIMATE
// =============================================================================

// CostEstimateRequest is the cost-estimate body. Numeric fields accept
// numbers or numeric strings; add_ons accepts an array or a JSON string.
type CostEstimateRequest struct {
	Area      string      `json:"area"`
	Nights    looseInt    `json:"nights"`
	PartySize looseInt    `json:"partySize"`
	AddOns    looseAddOns `json:"add_ons"`
	SiteLock  strictTrue  `json:"site_lock"`
}

type AddOnDTO struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

type LineItemsDTO struct {
	BaseLodging   float64 `json:"base_lodging"`
	ExtraGuestFee float64 `json:"extra_guest_fee"`
	AddOns        float64 `json:"add_ons"`
	SiteLockFee   float64 `json:"site_lock_fee"`
	ServiceFee    float64 `json:"service_fee"`
	CleaningFee   float64 `json:"cleaning_fee"`
	Tax           float64 `json:"tax"`
}

type CostEstimateResponse struct {
	Area             string       `json:"area"`
	AreaKey          string       `json:"area_key"`
	Nights           int          `json:"nights"`
	PartySize        int          `json:"party_size"`
	ExtraGuests      int          `json:"extra_guests"`
	LineItems        LineItemsDTO `json:"line_items"`
	AddOns           []AddOnDTO   `json:"add_on_lines"`
	TotalEstimate    float64      `json:"total_estimate"`
	DepositDueToday  float64      `json:"deposit_due_today"`
	RemainingBalance float64      `json:"remaining_balance"`
}

// =============================================================================
// STAY RULES AND READINESS
// =============================================================================

type RulesDTO struct {
	MinNightsWeekend     int `json:"min_nights_weekend"`
	MaxNights            int `json:"max_nights"`
	MaxPartySizeAbsolute int `json:"max_party_size_absolute"`
	SameDayCutoffHour    int `json:"same_day_cutoff_hour"`
}

type StayRulesResponse struct {
	Search         StayRulesSearchDTO `json:"search"`
	Passes         bool               `json:"passes"`
	Issues         []string           `json:"issues"`
	Rules          RulesDTO           `json:"rules"`
	WeekendStart   bool               `json:"weekend_start"`
	SameDayCheckin bool               `json:"same_day_checkin"`
}

type ReadinessFactorsDTO struct {
	AreasAvailable      int     `json:"areas_available"`
	TotalAreas          int     `json:"total_areas"`
	BestAmenityMatchPct float64 `json:"best_amenity_match_pct"`
	RulesPassed         bool    `json:"rules_passed"`
}

type ReadinessDTO struct {
	Score   int                 `json:"score"`
	Band    string              `json:"band"`
	Factors ReadinessFactorsDTO `json:"factors"`
}

type ReadinessResponse struct {
	Search     SearchDTO    `json:"search"`
	Readiness  ReadinessDTO `json:"readiness"`
	RuleIssues []string     `json:"rule_issues"`
}

// =============================================================================
// CANCELLATION AND CHANGES
// =============================================================================

type ManagePreviewRequest struct {
	CurrentStartDate  string     `json:"current_start_date"`
	ProposedStartDate string     `json:"proposed_start_date"`
	CurrentNights     looseInt   `json:"current_nights"`
	ProposedNights    looseInt   `json:"proposed_nights"`
	Total             looseFloat `json:"total"`
}

type BookingSummaryDTO struct {
	StartDate string   `json:"start_date"`
	Nights    int      `json:"nights"`
	Total     *float64 `json:"total,omitempty"`
}

type ChangeDTO struct {
	Changed   bool    `json:"changed"`
	ShiftDays int     `json:"shift_days"`
	ChangeFee float64 `json:"change_fee"`
	RiskBand  string  `json:"risk_band"`
}

type CancellationDTO struct {
	Eligible         bool    `json:"eligible"`
	DaysUntilArrival int     `json:"days_until_arrival"`
	Refund           float64 `json:"refund"`
	Credit           float64 `json:"credit"`
	Fees             float64 `json:"fees"`
	PolicyBand       string  `json:"policy_band"`
}

type ManagePreviewResponse struct {
	CurrentBooking  BookingSummaryDTO `json:"current_booking"`
	ProposedBooking BookingSummaryDTO `json:"proposed_booking"`
	Change          ChangeDTO         `json:"change"`
	Cancellation    CancellationDTO   `json:"cancellation"`
}

type DateRangeDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type CancellationPolicyDTO struct {
	FullRefundOnOrBefore   string       `json:"full_refund_if_canceled_on_or_before"`
	PartialRefundBetween   DateRangeDTO `json:"partial_refund_if_canceled_between"`
	NonRefundableOnOrAfter string       `json:"non_refundable_if_canceled_on_or_after"`
	AdminFee               float64      `json:"admin_fee"`
}

type RefundExamplesDTO struct {
	FullRefundAmount    float64 `json:"full_refund_amount"`
	PartialRefundAmount float64 `json:"partial_refund_amount"`
	NonRefundableAmount float64 `json:"non_refundable_amount"`
}

type CancellationPreviewResponse struct {
	TripStart      string                `json:"trip_start"`
	EstimatedTotal float64               `json:"estimated_total"`
	Policy         CancellationPolicyDTO `json:"policy"`
	RefundExamples RefundExamplesDTO     `json:"refund_examples"`
}

// =============================================================================
// ALERTS
// =============================================================================

type CreateAlertRequest struct {
	GuestName          string   `json:"guest_name"`
	Contact            string   `json:"contact"`
	PreferredArea      string   `json:"preferred_area"`
	RequestedStartDate string   `json:"requested_start_date"`
	Nights             looseInt `json:"nights"`
	PartySize          looseInt `json:"party_size"`
}

type AlertDTO struct {
	ID                 string `json:"id,omitempty"`
	GuestName          string `json:"guest_name"`
	Contact            string `json:"contact"`
	PreferredArea      string `json:"preferred_area"`
	RequestedStartDate string `json:"requested_start_date"`
	Nights             int    `json:"nights"`
	PartySize          int    `json:"party_size"`
	Status             string `json:"status"`
	CreatedAt          string `json:"created_at,omitempty"`
	UpdatedAt          string `json:"updated_at,omitempty"`
}

type CreateAlertResponse struct {
	ID      string   `json:"id"`
	Message string   `json:"message"`
	Alert   AlertDTO `json:"alert"`
}

type SweepResponse struct {
	Matched int `json:"matched"`
}

// =============================================================================
// CATALOG AND GUIDANCE
// =============================================================================

type AreaDTO struct {
	Key            string   `json:"key"`
	Label          string   `json:"label"`
	CapacityUnits  int      `json:"capacity_units"`
	BaseRate       float64  `json:"base_rate"`
	MaxPartySize   int      `json:"max_party_size"`
	IncludedGuests int      `json:"included_guests"`
	CleaningFee    float64  `json:"cleaning_fee"`
	Amenities      []string `json:"amenities"`
}

type RecommendationDTO struct {
	Area               string  `json:"area"`
	AreaKey            string  `json:"area_key"`
	OccupancyRate      float64 `json:"occupancy_rate"`
	BookingCount       int     `json:"booking_count"`
	BookedNights       int     `json:"booked_nights"`
	CapacityNights     int     `json:"capacity_nights"`
	Action             string  `json:"action"`
	SuggestedChangePct int     `json:"suggested_change_pct"`
}

type PricingGuidanceResponse struct {
	WindowStart     string              `json:"window_start"`
	WindowEnd       string              `json:"window_end"`
	Recommendations []RecommendationDTO `json:"recommendations"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO describes a demo data set.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func money(m generic.Money) float64 { return m.Float64() }

func pct(d decimal.Decimal) float64 { return d.InexactFloat64() }

func toSearchDTO(q booking.StayQuery, withEnd bool) SearchDTO {
	s := SearchDTO{
		StartDate: q.Start.String(),
		Nights:    q.Nights,
		PartySize: q.PartySize,
		Amenities: q.Amenities,
	}
	if s.Amenities == nil {
		s.Amenities = []string{}
	}
	if withEnd {
		s.EndDate = q.Interval().End.String()
	}
	if q.HasPreference() {
		pref := string(q.Preference)
		s.AreaPreference = &pref
	}
	return s
}

func toRowDTOs(rows []booking.AvailabilityRow) []AvailabilityRowDTO {
	out := make([]AvailabilityRowDTO, len(rows))
	for i, r := range rows {
		amenities := r.Amenities
		if amenities == nil {
			amenities = []string{}
		}
		out[i] = AvailabilityRowDTO{
			AreaKey:           string(r.AreaKey),
			AreaName:          r.AreaName,
			CapacityUnits:     r.CapacityUnits,
			BookedUnits:       r.BookedUnits,
			RemainingUnits:    r.RemainingUnits,
			Available:         r.Available,
			MaxPartySize:      r.MaxPartySize,
			BaseRate:          money(r.BaseRate),
			Amenities:         amenities,
			AmenityMatchCount: r.AmenityMatchCount,
			AmenityMatchPct:   pct(r.AmenityMatchPct),
		}
	}
	return out
}

func toAlternativeDTOs(alts []booking.AlternativeDate) []AlternativeDateDTO {
	out := make([]AlternativeDateDTO, len(alts))
	for i, a := range alts {
		out[i] = AlternativeDateDTO{
			StartDate:      a.Start.String(),
			EndDate:        a.End.String(),
			AvailableAreas: a.AvailableAreas,
		}
	}
	return out
}

func toCostEstimateResponse(c booking.CostBreakdown) CostEstimateResponse {
	lines := make([]AddOnDTO, len(c.AddOns))
	for i, a := range c.AddOns {
		lines[i] = AddOnDTO{Name: a.Name, Price: money(a.Price), Quantity: a.Quantity, Total: money(a.LineTotal)}
	}
	return CostEstimateResponse{
		Area:        c.Area.Label,
		AreaKey:     string(c.Area.Key),
		Nights:      c.Nights,
		PartySize:   c.PartySize,
		ExtraGuests: c.ExtraGuests,
		LineItems: LineItemsDTO{
			BaseLodging:   money(c.BaseLodging),
			ExtraGuestFee: money(c.ExtraGuestFee),
			AddOns:        money(c.AddOnTotal),
			SiteLockFee:   money(c.SiteLockFee),
			ServiceFee:    money(c.ServiceFee),
			CleaningFee:   money(c.CleaningFee),
			Tax:           money(c.Tax),
		},
		AddOns:           lines,
		TotalEstimate:    money(c.TotalEstimate),
		DepositDueToday:  money(c.DepositDueToday),
		RemainingBalance: money(c.RemainingBalance),
	}
}

func toRulesDTO(r booking.StayRules) RulesDTO {
	return RulesDTO{
		MinNightsWeekend:     r.MinNightsWeekend,
		MaxNights:            r.MaxNights,
		MaxPartySizeAbsolute: r.MaxPartySizeAbsolute,
		SameDayCutoffHour:    r.SameDayCutoffHour,
	}
}

func toReadinessDTO(s booking.ReadinessScore) ReadinessDTO {
	return ReadinessDTO{
		Score: s.Score,
		Band:  string(s.Band),
		Factors: ReadinessFactorsDTO{
			AreasAvailable:      s.Factors.AreasAvailable,
			TotalAreas:          s.Factors.TotalAreas,
			BestAmenityMatchPct: pct(s.Factors.BestAmenityMatchPct),
			RulesPassed:         s.Factors.RulesPassed,
		},
	}
}

func toManagePreviewResponse(m booking.ManageImpact) ManagePreviewResponse {
	total := money(m.Request.Total)
	return ManagePreviewResponse{
		CurrentBooking: BookingSummaryDTO{
			StartDate: m.Request.CurrentStart.String(),
			Nights:    m.Request.CurrentNights,
			Total:     &total,
		},
		ProposedBooking: BookingSummaryDTO{
			StartDate: m.Request.ProposedStart.String(),
			Nights:    m.Request.ProposedNights,
		},
		Change: ChangeDTO{
			Changed:   m.Change.Changed,
			ShiftDays: m.Change.ShiftDays,
			ChangeFee: money(m.Change.ChangeFee),
			RiskBand:  string(m.Change.Risk),
		},
		Cancellation: CancellationDTO{
			Eligible:         m.Cancellation.Eligible,
			DaysUntilArrival: m.Cancellation.DaysUntilArrival,
			Refund:           money(m.Cancellation.Refund),
			Credit:           money(m.Cancellation.Credit),
			Fees:             money(m.Cancellation.Fees),
			PolicyBand:       string(m.Cancellation.Band),
		},
	}
}

func toCancellationPreviewResponse(s booking.CancellationSchedule) CancellationPreviewResponse {
	return CancellationPreviewResponse{
		TripStart:      s.TripStart.String(),
		EstimatedTotal: money(s.EstimatedTotal),
		Policy: CancellationPolicyDTO{
			FullRefundOnOrBefore: s.FullRefundOnOrBefore.String(),
			PartialRefundBetween: DateRangeDTO{
				Start: s.PartialRefundStart.String(),
				End:   s.PartialRefundEnd.String(),
			},
			NonRefundableOnOrAfter: s.NonRefundableOnOrAfter.String(),
			AdminFee:               money(s.AdminFee),
		},
		RefundExamples: RefundExamplesDTO{
			FullRefundAmount:    money(s.FullRefundAmount),
			PartialRefundAmount: money(s.PartialRefundAmount),
			NonRefundableAmount: money(s.NonRefundableAmount),
		},
	}
}

func toAlertDTO(a booking.AvailabilityAlert, withMeta bool) AlertDTO {
	dto := AlertDTO{
		GuestName:          a.GuestName,
		Contact:            a.Contact,
		PreferredArea:      string(a.PreferredArea),
		RequestedStartDate: a.RequestedStart.String(),
		Nights:             a.Nights,
		PartySize:          a.PartySize,
		Status:             string(a.Status),
	}
	if withMeta {
		dto.ID = a.ID
		dto.CreatedAt = a.CreatedAt.Format(time.RFC3339)
		dto.UpdatedAt = a.UpdatedAt.Format(time.RFC3339)
	}
	return dto
}

func toAreaDTOs(catalog *booking.Catalog) []AreaDTO {
	areas := catalog.Areas()
	out := make([]AreaDTO, len(areas))
	for i, a := range areas {
		out[i] = AreaDTO{
			Key:            string(a.Key),
			Label:          a.Label,
			CapacityUnits:  a.CapacityUnits,
			BaseRate:       money(a.BaseRatePerNight),
			MaxPartySize:   a.MaxPartySize,
			IncludedGuests: a.IncludedGuests,
			CleaningFee:    money(a.CleaningFee),
			Amenities:      a.Amenities,
		}
	}
	return out
}

func toGuidanceResponse(g booking.GuidanceResult) PricingGuidanceResponse {
	recs := make([]RecommendationDTO, len(g.Recommendations))
	for i, r := range g.Recommendations {
		recs[i] = RecommendationDTO{
			Area:               r.AreaName,
			AreaKey:            string(r.Area),
			OccupancyRate:      pct(r.OccupancyRate),
			BookingCount:       r.BookingCount,
			BookedNights:       r.BookedNights,
			CapacityNights:     r.CapacityNights,
			Action:             string(r.Action),
			SuggestedChangePct: r.SuggestedChangePct,
		}
	}
	return PricingGuidanceResponse{
		WindowStart:     g.WindowStart.String(),
		WindowEnd:       g.WindowEnd.String(),
		Recommendations: recs,
	}
}
