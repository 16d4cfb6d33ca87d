package booking

import (
	"fmt"
	"time"

	"github.com/robbyrobaz/campsite-crm/generic"
)

// StayRuleResult is the outcome of checking a stay against house rules.
// A failing stay is a normal result, not an error.
type StayRuleResult struct {
	Passes         bool
	Issues         []string
	Rules          StayRules
	WeekendStart   bool
	SameDayCheckin bool
}

// EvaluateStayRules checks every rule independently and reports all issues.
// A zero start is reported as invalid. Weekend means a Friday or Saturday
// arrival; the same-day cutoff compares against the clock's local hour.
func EvaluateStayRules(rules StayRules, clock generic.Clock, start generic.TimePoint, nights, partySize int) StayRuleResult {
	issues := []string{}

	weekend := false
	if start.IsZero() {
		issues = append(issues, "Start date is invalid.")
	} else {
		wd := start.Weekday()
		weekend = wd == time.Friday || wd == time.Saturday
	}

	if partySize > rules.MaxPartySizeAbsolute {
		issues = append(issues, fmt.Sprintf("Party size exceeds maximum allowed (%d).", rules.MaxPartySizeAbsolute))
	}
	if nights > rules.MaxNights {
		issues = append(issues, fmt.Sprintf("Stay exceeds maximum allowed (%d nights).", rules.MaxNights))
	}
	if weekend && nights < rules.MinNightsWeekend {
		issues = append(issues, fmt.Sprintf("Weekend arrivals require at least %d nights.", rules.MinNightsWeekend))
	}

	now := clock.Now()
	sameDay := !start.IsZero() && start.Equal(generic.DayOf(now))
	if sameDay && now.Hour() >= rules.SameDayCutoffHour {
		issues = append(issues, fmt.Sprintf("Same-day booking cutoff is %d:00 local time.", rules.SameDayCutoffHour))
	}

	return StayRuleResult{
		Passes:         len(issues) == 0,
		Issues:         issues,
		Rules:          rules,
		WeekendStart:   weekend,
		SameDayCheckin: sameDay,
	}
}
