/*
scenarios.go - Demo data sets for the front desk and for demos

PURPOSE:

	Provides pre-built booking calendars that populate the store with
	realistic data relative to today, so the booking assistant has something
	to reason about on a fresh install.

AVAILABLE SCENARIOS:

	busy-week:          A family cabin stay, a scout group, barn and pavilion
	                    events, spread over the coming week
	sold-out-weekend:   Every group space taken for the next two weekends,
	                    for trying alternative dates and alerts
	holiday-rush:       Cabins and tents near capacity for ten days

HOW SCENARIOS WORK:
 1. Remove previous demo bookings (ids start with "demo_")
 2. Insert the scenario's bookings, dated relative to the engine clock
 3. Remember which scenario is loaded

Real bookings are never touched: both load and reset only address the
demo id prefix.

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "busy-week"}

SEE ALSO:
  - handlers.go: Router-facing handlers
  - store/store.go: Prefix operations
*/
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robbyrobaz/campsite-crm/generic"
	"github.com/robbyrobaz/campsite-crm/store"
)

// DemoIDPrefix marks bookings created by scenarios.
const DemoIDPrefix = "demo_"

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "busy-week",
		Name:        "Busy Week",
		Description: "Mixed bookings over the coming week across every area type",
	},
	{
		ID:          "sold-out-weekend",
		Name:        "Sold-Out Weekend",
		Description: "Kitchen, barn and pavilion fully booked for the next two weekends",
	},
	{
		ID:          "holiday-rush",
		Name:        "Holiday Rush",
		Description: "Cabins and tents near capacity for ten days",
	},
}

// demoBooking is a booking dated relative to today.
type demoBooking struct {
	offset  int
	nights  int
	area    string
	guest   string
	kind    string
	revenue float64
	status  string
	notes   string
}

func busyWeek() []demoBooking {
	return []demoBooking{
		{-6, 2, "cabin", "Sierra Morgan", "family", 540, "checked-out", "Summer weekend family stay"},
		{-2, 3, "tent", "North Ridge Scouts", "group", 1240, "checked-in", "Group booking with late final payment"},
		{1, 2, "Tent Site", "Kira Patel", "individual", 210, "confirmed", "First-time guest from waitlist conversion"},
		{3, 1, "pavilion", "Sierra Morgan", "family", 300, "active", "Return guest event booking"},
		{4, 2, "barn", "Horseshoe Trainers", "group", 780, "active", "Barn-first package"},
		{8, 2, "kitchen", "Quentin Rivers", "individual", 415, "confirmed", "Kitchen-area booking with partial payment"},
	}
}

func soldOutWeekend(today generic.TimePoint) []demoBooking {
	var out []demoBooking
	friday := daysUntilFriday(today)
	for week := 0; week < 2; week++ {
		offset := friday + 7*week
		out = append(out,
			demoBooking{offset, 2, "kitchen", "Valley Reunion", "group", 320, "confirmed", "Weekend kitchen hold"},
			demoBooking{offset, 2, "pavilion", "Lakeside Wedding", "group", 280, "confirmed", "Ceremony and reception"},
			demoBooking{offset, 2, "barn", "Trail Riders Club", "group", 380, "active", "Barn block, stall one"},
			demoBooking{offset, 2, "barn", "Trail Riders Club", "group", 380, "active", "Barn block, stall two"},
		)
	}
	return out
}

func holidayRush() []demoBooking {
	var out []demoBooking
	for i := 0; i < 7; i++ {
		out = append(out, demoBooking{1, 10, "cabin", fmt.Sprintf("Cabin Party %d", i+1), "family", 1100, "confirmed", "Holiday block"})
	}
	for i := 0; i < 17; i++ {
		out = append(out, demoBooking{1, 10, "tent", fmt.Sprintf("Tent Party %d", i+1), "individual", 450, "confirmed", "Holiday block"})
	}
	out = append(out, demoBooking{2, 1, "tent", "Late Cancel", "individual", 45, "canceled", "Canceled, frees a site"})
	return out
}

func daysUntilFriday(today generic.TimePoint) int {
	d := (int(time.Friday) - int(today.Weekday()) + 7) % 7
	if d == 0 {
		return 7
	}
	return d
}

// ListScenarios returns available scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
// GET /api/scenarios/current
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario replaces the demo bookings with a predefined scenario.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	decodeLenient(r, &req)

	today := h.Engine.Today()
	var bookings []demoBooking
	switch req.ScenarioID {
	case "busy-week":
		bookings = busyWeek()
	case "sold-out-weekend":
		bookings = soldOutWeekend(today)
	case "holiday-rush":
		bookings = holidayRush()
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	ctx := r.Context()
	removed, err := h.Store.DeleteBookingsWithPrefix(ctx, DemoIDPrefix)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to clear demo bookings", err)
		return
	}
	if err := h.insertDemoBookings(ctx, today, bookings); err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to load scenario", err)
		return
	}

	h.mu.Lock()
	h.currentScenario = req.ScenarioID
	h.mu.Unlock()

	log.Ctx(ctx).Info().
		Str("scenario", req.ScenarioID).
		Int64("removed", removed).
		Int("inserted", len(bookings)).
		Msg("Scenario loaded")

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "loaded",
		"scenario": req.ScenarioID,
		"inserted": len(bookings),
	})
}

// ResetScenario removes every demo booking.
// POST /api/scenarios/reset
func (h *Handler) ResetScenario(w http.ResponseWriter, r *http.Request) {
	removed, err := h.Store.DeleteBookingsWithPrefix(r.Context(), DemoIDPrefix)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Failed to remove demo bookings", err)
		return
	}

	h.mu.Lock()
	h.currentScenario = ""
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "removed": removed})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) insertDemoBookings(ctx context.Context, today generic.TimePoint, bookings []demoBooking) error {
	for _, b := range bookings {
		err := h.Store.SaveBooking(ctx, store.Booking{
			ID:          DemoIDPrefix + h.NewID(),
			BookingDate: today.AddDays(b.offset),
			GuestName:   b.guest,
			GuestType:   b.kind,
			Nights:      b.nights,
			AreaRented:  b.area,
			Revenue:     generic.NewMoney(b.revenue),
			Status:      b.status,
			Notes:       "[DEMO] " + b.notes,
		})
		if err != nil {
			return fmt.Errorf("save demo booking for %s: %w", b.guest, err)
		}
	}
	return nil
}
