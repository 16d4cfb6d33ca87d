/*
handlers.go - HTTP API handlers for the booking assistant

PURPOSE:
  Exposes the booking engine via REST API. Handles HTTP request/response,
  lenient input normalization and JSON serialization, and delegates every
  decision to booking.Engine.

ENDPOINTS:
  Booking assistant (/api/booking-assistant):
    GET    /availability            Ranked areas, recommendations, alternative dates
    POST   /cost-estimate           Itemized quote with deposit
    GET    /stay-rules              House rule check
    POST   /manage-preview          Change and cancellation impact
    GET    /cancellation-preview    Refund deadlines for a trip
    GET    /readiness-score         0-100 booking readiness
    POST   /availability-alerts     Subscribe to openings
    GET    /availability-alerts     List alerts (?status=active)
    POST   /availability-alerts/sweep  Match alerts now

  Catalog and guidance:
    GET    /api/areas               Configured lodging areas
    GET    /api/policy              Active policy document
    GET    /api/pricing/recommendations  Occupancy-based pricing moves

  Scenarios:
    GET    /api/scenarios           List demo data sets
    POST   /api/scenarios/load      Load one
    POST   /api/scenarios/reset     Remove demo bookings

  GET /health                       Store connectivity

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Engine: Availability, pricing and policy decisions
  - Store: Alerts and demo bookings
  - PolicyFactory: Renders the active policy document

ERROR HANDLING:
  Booking assistant inputs are normalized, never rejected. Errors are
  returned as JSON with appropriate HTTP status:
  - 400: Alert without guest name or contact, unknown scenario
  - 503: Booking store unavailable
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - params.go: Input normalization
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robbyrobaz/campsite-crm/booking"
	"github.com/robbyrobaz/campsite-crm/factory"
	"github.com/robbyrobaz/campsite-crm/generic"
	"github.com/robbyrobaz/campsite-crm/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine        *booking.Engine
	Store         store.Store
	PolicyFactory *factory.PolicyFactory

	// NewID generates alert and demo booking ids.
	NewID func() string

	mu              sync.Mutex
	currentScenario string
}

// NewHandler creates a new handler over engine and its backing store.
func NewHandler(engine *booking.Engine, s store.Store) *Handler {
	return &Handler{
		Engine:        engine,
		Store:         s,
		PolicyFactory: factory.NewPolicyFactory(),
		NewID:         uuid.NewString,
	}
}

// =============================================================================
// AVAILABILITY AND READINESS
// =============================================================================

// Availability ranks areas for a proposed stay.
// GET /api/booking-assistant/availability
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	q := stayQueryFromURL(r, h.Engine.Catalog(), h.Engine.Today())

	res, err := h.Engine.Availability(r.Context(), q)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AvailabilityResponse{
		Search:           toSearchDTO(res.Query, true),
		Availability:     toRowDTOs(res.Rows),
		RecommendedAreas: toRowDTOs(res.Recommended),
		AlternativeDates: toAlternativeDTOs(res.Alternatives),
	})
}

// ReadinessScore scores how ready a proposed stay is to book.
// GET /api/booking-assistant/readiness-score
func (h *Handler) ReadinessScore(w http.ResponseWriter, r *http.Request) {
	q := stayQueryFromURL(r, h.Engine.Catalog(), h.Engine.Today())

	res, err := h.Engine.Readiness(r.Context(), q)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ReadinessResponse{
		Search:     toSearchDTO(res.Query, false),
		Readiness:  toReadinessDTO(res.Readiness),
		RuleIssues: res.Rules.Issues,
	})
}

// StayRules checks a proposed stay against the house rules. Violations are
// reported with a 200.
// GET /api/booking-assistant/stay-rules
func (h *Handler) StayRules(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start := dateOr(q.Get("startDate"), h.Engine.Today())
	nights := atLeastOne(q.Get("nights"))
	party := atLeastOne(q.Get("partySize"))

	res := h.Engine.StayRules(start, nights, party)
	writeJSON(w, http.StatusOK, StayRulesResponse{
		Search:         StayRulesSearchDTO{StartDate: start.String(), Nights: nights, PartySize: party},
		Passes:         res.Passes,
		Issues:         res.Issues,
		Rules:          toRulesDTO(res.Rules),
		WeekendStart:   res.WeekendStart,
		SameDayCheckin: res.SameDayCheckin,
	})
}

// =============================================================================
// PRICING
// =============================================================================

// CostEstimate itemizes the price of a stay.
// POST /api/booking-assistant/cost-estimate
func (h *Handler) CostEstimate(w http.ResponseWriter, r *http.Request) {
	var req CostEstimateRequest
	decodeLenient(r, &req)

	breakdown := h.Engine.EstimateCost(booking.CostRequest{
		Area:      h.Engine.Catalog().NormalizeAreaKey(req.Area),
		Nights:    req.Nights.OrAtLeastOne(1),
		PartySize: req.PartySize.OrAtLeastOne(1),
		AddOns:    req.AddOns,
		SiteLock:  bool(req.SiteLock),
	})
	writeJSON(w, http.StatusOK, toCostEstimateResponse(breakdown))
}

// PricingRecommendations suggests price moves from upcoming occupancy.
// GET /api/pricing/recommendations
func (h *Handler) PricingRecommendations(w http.ResponseWriter, r *http.Request) {
	res, err := h.Engine.PricingGuidance(r.Context())
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGuidanceResponse(res))
}

// =============================================================================
// CANCELLATION AND CHANGES
// =============================================================================

// ManagePreview previews changing or cancelling an existing booking.
// POST /api/booking-assistant/manage-preview
func (h *Handler) ManagePreview(w http.ResponseWriter, r *http.Request) {
	var req ManagePreviewRequest
	decodeLenient(r, &req)

	current := dateOr(req.CurrentStartDate, h.Engine.Today())
	currentNights := req.CurrentNights.OrAtLeastOne(1)

	impact := h.Engine.ManageImpact(booking.ManageRequest{
		CurrentStart:   current,
		CurrentNights:  currentNights,
		ProposedStart:  dateOr(req.ProposedStartDate, current),
		ProposedNights: req.ProposedNights.OrDefault(currentNights),
		Total:          req.Total.Money(),
	})
	writeJSON(w, http.StatusOK, toManagePreviewResponse(impact))
}

// CancellationPreview lists refund deadlines for a trip.
// GET /api/booking-assistant/cancellation-preview
func (h *Handler) CancellationPreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start := dateOr(q.Get("startDate"), h.Engine.Today())
	total := nonNegativeMoney(q.Get("total"))

	writeJSON(w, http.StatusOK, toCancellationPreviewResponse(h.Engine.CancellationWindows(start, total)))
}

// =============================================================================
// AVAILABILITY ALERTS
// =============================================================================

// CreateAlert subscribes a guest to openings for a stay.
// POST /api/booking-assistant/availability-alerts
func (h *Handler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	var req CreateAlertRequest
	decodeLenient(r, &req)

	catalog := h.Engine.Catalog()
	area := booking.AreaMixed
	if pref := areaPreference(catalog, req.PreferredArea); pref != "" {
		area = pref
	}

	alert, err := booking.NewAvailabilityAlert(
		h.NewID(),
		req.GuestName,
		req.Contact,
		area,
		dateOr(req.RequestedStartDate, h.Engine.Today()),
		req.Nights.OrAtLeastOne(1),
		req.PartySize.OrAtLeastOne(1),
		h.Engine.Clock().Now(),
	)
	if errors.Is(err, booking.ErrAlertIncomplete) {
		writeError(w, http.StatusBadRequest, "guest_name and contact are required.", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create alert", err)
		return
	}

	if err := h.Store.SaveAlert(r.Context(), alert); err != nil {
		h.writeEngineError(w, r, &generic.UpstreamError{Op: "save_alert", Err: err})
		return
	}

	log.Ctx(r.Context()).Info().
		Str("alert_id", alert.ID).
		Str("area", string(alert.PreferredArea)).
		Str("start", alert.RequestedStart.String()).
		Msg("Availability alert created")

	writeJSON(w, http.StatusCreated, CreateAlertResponse{
		ID:      alert.ID,
		Message: "Availability alert created",
		Alert:   toAlertDTO(alert, false),
	})
}

// ListAlerts returns alerts, optionally filtered by status.
// GET /api/booking-assistant/availability-alerts
func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	var status booking.AlertStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = booking.ParseAlertStatus(raw)
	}

	alerts, err := h.Store.ListAlerts(r.Context(), status)
	if err != nil {
		h.writeEngineError(w, r, &generic.UpstreamError{Op: "list_alerts", Err: err})
		return
	}

	dtos := make([]AlertDTO, len(alerts))
	for i, a := range alerts {
		dtos[i] = toAlertDTO(a, true)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SweepAlerts matches active alerts against current availability.
// POST /api/booking-assistant/availability-alerts/sweep
func (h *Handler) SweepAlerts(w http.ResponseWriter, r *http.Request) {
	matched, err := h.Engine.SweepAlerts(r.Context(), h.Store)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SweepResponse{Matched: matched})
}

// =============================================================================
// CATALOG
// =============================================================================

// ListAreas returns the configured lodging areas in catalog order.
// GET /api/areas
func (h *Handler) ListAreas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toAreaDTOs(h.Engine.Catalog()))
}

// GetPolicy returns the active catalog and policy as a policy document.
// GET /api/policy
func (h *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.PolicyFactory.ToDocument(h.Engine.Catalog(), h.Engine.Policy()))
}

// Health reports whether the booking store is reachable.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "Booking store unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeEngineError maps engine failures to a status. Store failures are a 503
// and are never degraded to partial answers.
func (h *Handler) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.Ctx(r.Context())
	if generic.IsUpstream(err) {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("Booking store unavailable")
		writeError(w, http.StatusServiceUnavailable, "Booking data is temporarily unavailable", err)
		return
	}
	logger.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	writeError(w, http.StatusInternalServerError, "Internal error", err)
}
