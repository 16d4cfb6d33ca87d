package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/robbyrobaz/campsite-crm/booking"
)

func passing() booking.StayRuleResult { return booking.StayRuleResult{Passes: true} }
func failing() booking.StayRuleResult {
	return booking.StayRuleResult{Passes: false, Issues: []string{"x"}}
}

func TestScoreReadiness_EverythingOpenNoAmenities(t *testing.T) {
	w := booking.DefaultPolicy().Readiness
	rows := booking.BuildSnapshot(booking.DefaultCatalog(), nil, booking.StayQuery{Start: june(4), Nights: 1, PartySize: 2})

	score := booking.ScoreReadiness(w, rows, passing(), nil)

	// 55 availability + 20 no preference + 15 rules
	assert.Equal(t, 90, score.Score)
	assert.Equal(t, booking.ReadinessHigh, score.Band)
	assert.Equal(t, 6, score.Factors.AreasAvailable)
	assert.Equal(t, 6, score.Factors.TotalAreas)
	assert.True(t, score.Factors.RulesPassed)
}

func TestScoreReadiness_FailedRulesDropFifteen(t *testing.T) {
	rows := booking.BuildSnapshot(booking.DefaultCatalog(), nil, booking.StayQuery{Start: june(4), Nights: 1, PartySize: 2})

	score := booking.ScoreReadiness(booking.DefaultPolicy().Readiness, rows, failing(), nil)

	assert.Equal(t, 75, score.Score)
	assert.Equal(t, booking.ReadinessHigh, score.Band, "75 is the high band floor")
}

func TestScoreReadiness_PartialAvailabilityAndAmenities(t *testing.T) {
	// GIVEN: Half the areas fully booked and an amenity only half matched
	var stays []booking.StayRecord
	stays = append(stays, repeatStay(1, booking.AreaKitchen, june(4), 1)...)
	stays = append(stays, repeatStay(2, booking.AreaBarn, june(4), 1)...)
	stays = append(stays, repeatStay(1, booking.AreaPavilion, june(4), 1)...)
	amenities := []string{"power", "horse stalls"}
	rows := booking.BuildSnapshot(booking.DefaultCatalog(), stays, booking.StayQuery{Start: june(4), Nights: 1, PartySize: 2, Amenities: amenities})

	// WHEN
	score := booking.ScoreReadiness(booking.DefaultPolicy().Readiness, rows, passing(), amenities)

	// THEN: 27.5 + 15 + 15 = 57.5, rounded half away from zero
	assert.Equal(t, 3, score.Factors.AreasAvailable)
	assert.Equal(t, "50", score.Factors.BestAmenityMatchPct.String())
	assert.Equal(t, 58, score.Score)
	assert.Equal(t, booking.ReadinessMedium, score.Band)
}

func TestScoreReadiness_EmptyRowsIsLow(t *testing.T) {
	score := booking.ScoreReadiness(booking.DefaultPolicy().Readiness, nil, failing(), []string{"power"})

	assert.Equal(t, 0, score.Score)
	assert.Equal(t, booking.ReadinessLow, score.Band)
	assert.Equal(t, 1, score.Factors.TotalAreas)
}

func TestScoreReadiness_DeterministicAndMonotonic(t *testing.T) {
	// Freeing units never lowers the score.
	w := booking.DefaultPolicy().Readiness
	q := booking.StayQuery{Start: day(2024, time.June, 4), Nights: 1, PartySize: 2}
	catalog := booking.DefaultCatalog()

	var stays []booking.StayRecord
	for _, a := range catalog.Areas() {
		stays = append(stays, repeatStay(a.CapacityUnits, a.Key, q.Start, 1)...)
	}

	prev := -1
	for len(stays) > 0 {
		rows := booking.BuildSnapshot(catalog, stays, q)
		first := booking.ScoreReadiness(w, rows, passing(), nil)
		again := booking.ScoreReadiness(w, booking.BuildSnapshot(catalog, stays, q), passing(), nil)
		assert.Equal(t, first, again)
		assert.GreaterOrEqual(t, first.Score, prev)
		assert.GreaterOrEqual(t, first.Score, 0)
		assert.LessOrEqual(t, first.Score, 100)
		prev = first.Score
		stays = stays[1:]
	}
}
