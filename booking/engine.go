/*
engine.go - Booking engine orchestration

PURPOSE:
  Engine binds the immutable Catalog and Policy to a StayReader and a Clock,
  and exposes one method per caller-facing operation. Methods that need
  occupancy fetch existing stays exactly once, then run entirely in memory.

CONCURRENCY:
  Engine holds no mutable state. Concurrent calls are independent; the only
  blocking point is the StayReader.

ERRORS:
  A StayReader failure is returned as *generic.UpstreamError. The engine
  never guesses occupancy when the store is down.

USAGE:
  engine := booking.NewEngine(booking.DefaultCatalog(), booking.DefaultPolicy(), store, generic.SystemClock{})
  result, err := engine.Availability(ctx, query)

SEE ALSO:
  - availability.go, rules.go, pricing.go, cancellation.go, readiness.go
  - store/sqlite/sqlite.go: StayReader implementation
*/
package booking

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/robbyrobaz/campsite-crm/generic"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// StayReader is the read-only view of the booking store the engine needs.
type StayReader interface {
	// ListStaysOverlapping returns every stay sharing at least one night
	// with window, in any status.
	ListStaysOverlapping(ctx context.Context, window generic.Interval) ([]StayRecord, error)
}

// AlertStore persists availability alerts for the sweep.
type AlertStore interface {
	ListAlerts(ctx context.Context, status AlertStatus) ([]AvailabilityAlert, error)
	UpdateAlertStatus(ctx context.Context, id string, status AlertStatus, at time.Time) error
}

// =============================================================================
// ENGINE
// =============================================================================

type Engine struct {
	catalog *Catalog
	policy  Policy
	stays   StayReader
	clock   generic.Clock
	tracer  trace.Tracer
}

// NewEngine creates an engine. A nil clock uses the system clock.
func NewEngine(catalog *Catalog, policy Policy, stays StayReader, clock generic.Clock) *Engine {
	if clock == nil {
		clock = generic.SystemClock{}
	}
	return &Engine{
		catalog: catalog,
		policy:  policy,
		stays:   stays,
		clock:   clock,
		tracer:  otel.Tracer("github.com/robbyrobaz/campsite-crm/booking"),
	}
}

func (e *Engine) Catalog() *Catalog        { return e.catalog }
func (e *Engine) Policy() Policy           { return e.policy }
func (e *Engine) Clock() generic.Clock     { return e.clock }
func (e *Engine) Today() generic.TimePoint { return generic.Today(e.clock) }

// fetch reads the stays overlapping window once for an operation.
func (e *Engine) fetch(ctx context.Context, op string, window generic.Interval) ([]StayRecord, error) {
	ctx, span := e.tracer.Start(ctx, "booking."+op+".fetch_stays",
		trace.WithAttributes(
			attribute.String("window.start", window.Start.String()),
			attribute.String("window.end", window.End.String()),
		))
	defer span.End()

	stays, err := e.stays.ListStaysOverlapping(ctx, window)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "booking store unavailable")
		return nil, &generic.UpstreamError{Op: op, Err: err}
	}
	span.SetAttributes(attribute.Int("stays.count", len(stays)))
	return stays, nil
}

// =============================================================================
// AVAILABILITY
// =============================================================================

// AvailabilityResult answers an availability search.
type AvailabilityResult struct {
	Query        StayQuery
	End          generic.TimePoint
	Rows         []AvailabilityRow
	Recommended  []AvailabilityRow
	Alternatives []AlternativeDate
}

// Availability ranks areas for q and suggests nearby alternative dates.
func (e *Engine) Availability(ctx context.Context, q StayQuery) (AvailabilityResult, error) {
	stays, err := e.fetch(ctx, "availability", ScanWindow(e.policy.Search, q))
	if err != nil {
		return AvailabilityResult{}, err
	}

	rows := FilterByPreference(BuildSnapshot(e.catalog, stays, q), q.Preference)
	return AvailabilityResult{
		Query:        q,
		End:          q.Interval().End,
		Rows:         rows,
		Recommended:  Recommended(rows, e.policy.Search.MaxRecommended),
		Alternatives: FindAlternatives(e.catalog, e.policy.Search, stays, q),
	}, nil
}

// =============================================================================
// READINESS
// =============================================================================

type ReadinessResult struct {
	Query     StayQuery
	Readiness ReadinessScore
	Rules     StayRuleResult
}

// Readiness scores how booking-ready q is.
func (e *Engine) Readiness(ctx context.Context, q StayQuery) (ReadinessResult, error) {
	stays, err := e.fetch(ctx, "readiness", q.Interval())
	if err != nil {
		return ReadinessResult{}, err
	}

	rows := FilterByPreference(BuildSnapshot(e.catalog, stays, q), q.Preference)
	rules := e.StayRules(q.Start, q.Nights, q.PartySize)
	return ReadinessResult{
		Query:     q,
		Readiness: ScoreReadiness(e.policy.Readiness, rows, rules, q.Amenities),
		Rules:     rules,
	}, nil
}

// =============================================================================
// PRICE-ONLY OPERATIONS
// =============================================================================

func (e *Engine) StayRules(start generic.TimePoint, nights, partySize int) StayRuleResult {
	return EvaluateStayRules(e.policy.Stay, e.clock, start, nights, partySize)
}

func (e *Engine) EstimateCost(req CostRequest) CostBreakdown {
	return EstimateCost(e.catalog, e.policy.Pricing, req)
}

func (e *Engine) CancellationWindows(tripStart generic.TimePoint, total generic.Money) CancellationSchedule {
	return CancellationWindows(e.policy.Cancellation, tripStart, total)
}

// ManageImpact previews cancelling or changing a booking as of today.
func (e *Engine) ManageImpact(req ManageRequest) ManageImpact {
	return PreviewManageImpact(e.policy.Cancellation, e.Today(), req)
}

// =============================================================================
// PRICING GUIDANCE
// =============================================================================

type GuidanceResult struct {
	WindowStart     generic.TimePoint
	WindowEnd       generic.TimePoint
	Recommendations []PricingRecommendation
}

// PricingGuidance suggests price moves from occupancy over the next
// WindowDays days.
func (e *Engine) PricingGuidance(ctx context.Context) (GuidanceResult, error) {
	today := e.Today()
	end := today.AddDays(e.policy.Guidance.WindowDays)
	stays, err := e.fetch(ctx, "pricing_guidance", generic.Interval{Start: today, End: end.AddDays(1)})
	if err != nil {
		return GuidanceResult{}, err
	}
	return GuidanceResult{
		WindowStart:     today,
		WindowEnd:       end,
		Recommendations: PricingGuidance(e.catalog, e.policy.Guidance, stays, generic.Interval{Start: today, End: end}),
	}, nil
}

// =============================================================================
// ALERT SWEEP
// =============================================================================

// MatchAlert reports whether the alert's preferred area could take the
// requested stay given stays.
func (e *Engine) MatchAlert(stays []StayRecord, a AvailabilityAlert) bool {
	return AlertMatches(e.catalog, stays, a)
}

// SweepAlerts marks every active alert whose preferred area is now available
// as matched and returns how many were matched. Alerts whose stay has already
// started are closed.
func (e *Engine) SweepAlerts(ctx context.Context, alerts AlertStore) (int, error) {
	active, err := alerts.ListAlerts(ctx, AlertActive)
	if err != nil {
		return 0, &generic.UpstreamError{Op: "sweep_alerts", Err: err}
	}
	if len(active) == 0 {
		return 0, nil
	}

	today := e.Today()
	window := active[0].Query().Interval()
	for _, a := range active[1:] {
		window = window.Union(a.Query().Interval())
	}
	stays, err := e.fetch(ctx, "sweep_alerts", window)
	if err != nil {
		return 0, err
	}

	matched := 0
	now := e.clock.Now()
	for _, a := range active {
		next := AlertActive
		switch {
		case a.RequestedStart.Before(today):
			next = AlertClosed
		case e.MatchAlert(stays, a):
			next = AlertMatched
			matched++
		}
		if next == AlertActive {
			continue
		}
		if err := alerts.UpdateAlertStatus(ctx, a.ID, next, now); err != nil {
			return matched, &generic.UpstreamError{Op: "sweep_alerts", Err: err}
		}
	}
	return matched, nil
}
