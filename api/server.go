/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request, carried by the request logger
  2. Tracing:    OpenTelemetry server span per request
  3. Logging:    One zerolog line per request
  4. Recoverer:  Panic recovery (500 instead of crash)
  5. CORS:       Cross-origin requests for the front desk UI

ROUTE GROUPS:
  /api/booking-assistant/*   Availability, pricing, rules, alerts
  /api/areas                 Rentable area catalog
  /api/policy                Effective booking policy
  /api/pricing/*             Pricing guidance
  /api/scenarios/*           Demo scenarios
  /health                    Liveness and store reachability

SECURITY NOTE:
  No authentication middleware. All endpoints are public and meant to sit
  behind the front desk network.

SEE ALSO:
  - handlers.go: Handler implementations
  - middleware.go: Request id, tracing and logging
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured. An empty
// allowedOrigins list falls back to the local development origins.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173", "http://localhost:5000"}
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(WithRequestID)
	r.Use(WithTracing)
	r.Use(WithLogging)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/booking-assistant", func(r chi.Router) {
			r.Get("/availability", h.Availability)
			r.Post("/cost-estimate", h.CostEstimate)
			r.Get("/stay-rules", h.StayRules)
			r.Post("/manage-preview", h.ManagePreview)
			r.Get("/cancellation-preview", h.CancellationPreview)
			r.Get("/readiness-score", h.ReadinessScore)

			r.Route("/availability-alerts", func(r chi.Router) {
				r.Get("/", h.ListAlerts)
				r.Post("/", h.CreateAlert)
				r.Post("/sweep", h.SweepAlerts)
			})
		})

		r.Get("/areas", h.ListAreas)
		r.Get("/policy", h.GetPolicy)
		r.Get("/pricing/recommendations", h.PricingRecommendations)

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetScenario)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found", nil)
	})

	return r
}
