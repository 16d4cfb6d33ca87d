/*
scenarios_test.go - Unit tests for demo scenarios

PURPOSE:
	Tests that each scenario loads its bookings relative to the engine
	clock, replaces the previous demo data, and never touches real bookings.
*/
package api

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyrobaz/campsite-crm/generic"
)

func TestScenario_AllScenariosLoadWithoutError(t *testing.T) {
	expected := map[string]int{
		"busy-week":        6,
		"sold-out-weekend": 8,
		"holiday-rush":     25,
	}

	for _, sc := range scenarios {
		t.Run(sc.ID, func(t *testing.T) {
			h, s := setupSQLiteHandler(t)

			rec := do(t, h, http.MethodPost, "/api/scenarios/load", `{"scenario_id":"`+sc.ID+`"}`)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			res := decode[map[string]any](t, rec)
			assert.Equal(t, "loaded", res["status"])
			assert.EqualValues(t, expected[sc.ID], res["inserted"])

			count, err := s.CountBookingsWithPrefix(context.Background(), DemoIDPrefix)
			require.NoError(t, err)
			assert.Equal(t, expected[sc.ID], count)
		})
	}
}

func TestScenario_ReloadReplacesDemoBookings(t *testing.T) {
	// GIVEN: A real booking and a loaded scenario
	h, s := setupSQLiteHandler(t)
	ctx := context.Background()
	saveStay(t, s, "real-1", june(4), 2, "cabin")
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/scenarios/load", `{"scenario_id":"holiday-rush"}`).Code)

	// WHEN: A different scenario is loaded
	rec := do(t, h, http.MethodPost, "/api/scenarios/load", `{"scenario_id":"busy-week"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// THEN: Only the new demo bookings remain next to the real one
	count, err := s.CountBookingsWithPrefix(ctx, DemoIDPrefix)
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	realBooking, err := s.GetBooking(ctx, "real-1")
	require.NoError(t, err)
	assert.Equal(t, "cabin", realBooking.AreaRented)

	current := decode[ScenarioDTO](t, do(t, h, http.MethodGet, "/api/scenarios/current", ""))
	assert.Equal(t, "busy-week", current.ID)
}

func TestScenario_BookingsAreRelativeToToday(t *testing.T) {
	h, s := setupSQLiteHandler(t)
	ctx := context.Background()

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/scenarios/load", `{"scenario_id":"busy-week"}`).Code)

	// Busy week has a pavilion event three days out
	stays, err := s.ListStaysOverlapping(ctx, generic.Interval{Start: june(1).AddDays(-13), End: june(1).AddDays(-8)})
	require.NoError(t, err)
	var found bool
	for _, st := range stays {
		if st.Area == "pavilion" {
			found = true
			assert.Equal(t, "2024-05-23", st.Start.String())
			assert.True(t, strings.HasPrefix(st.ID, DemoIDPrefix))
		}
	}
	assert.True(t, found)
}

func TestScenario_SoldOutWeekendStartsOnFriday(t *testing.T) {
	// Monday May 20 is four days before Friday May 24
	today := generic.NewTimePoint(2024, time.May, 20)
	assert.Equal(t, 4, daysUntilFriday(today))

	// A Friday looks to the next weekend
	assert.Equal(t, 7, daysUntilFriday(generic.NewTimePoint(2024, time.May, 24)))

	for _, b := range soldOutWeekend(today) {
		assert.Equal(t, time.Friday, today.AddDays(b.offset).Weekday())
	}
}

func TestScenario_UnknownScenarioIs400(t *testing.T) {
	h, s := setupSQLiteHandler(t)
	saveStay(t, s, DemoIDPrefix+"keep", june(4), 1, "tent")

	rec := do(t, h, http.MethodPost, "/api/scenarios/load", `{"scenario_id":"ski-season"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	count, err := s.CountBookingsWithPrefix(context.Background(), DemoIDPrefix)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestScenario_ResetKeepsRealBookings(t *testing.T) {
	h, s := setupSQLiteHandler(t)
	ctx := context.Background()
	saveStay(t, s, "real-1", june(4), 2, "cabin")
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/scenarios/load", `{"scenario_id":"busy-week"}`).Code)

	rec := do(t, h, http.MethodPost, "/api/scenarios/reset", "")

	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[map[string]any](t, rec)
	assert.EqualValues(t, 6, res["removed"])

	count, err := s.CountBookingsWithPrefix(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Equal(t, "null", strings.TrimSpace(do(t, h, http.MethodGet, "/api/scenarios/current", "").Body.String()))
}

func TestListScenarios(t *testing.T) {
	h, _ := setupSQLiteHandler(t)

	rec := do(t, h, http.MethodGet, "/api/scenarios", "")

	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]ScenarioDTO](t, rec)
	require.Len(t, list, 3)
	assert.Equal(t, "busy-week", list[0].ID)
}
