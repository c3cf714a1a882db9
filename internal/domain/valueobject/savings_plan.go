package valueobject

import (
	"math"
	"time"
)

// SavingsPlan tracks progress toward a yearly savings target.
type SavingsPlan struct {
	Year              int
	TargetAmount      float64
	CurrentSavings    float64
	Remaining         float64
	MonthsLeft        int
	MonthlySuggestion float64
	Achieved          bool
}

// NewSavingsPlan computes the plan for year as seen at now.
//
// Months left counts the whole months after the current one, with a floor of one
// so the remainder can still be put aside in December. A future year has twelve
// months left; a past year has none and gets no monthly suggestion.
func NewSavingsPlan(year int, target, current float64, now time.Time) SavingsPlan {
	plan := SavingsPlan{
		Year:           year,
		TargetAmount:   target,
		CurrentSavings: current,
		Remaining:      math.Max(target-current, 0),
	}
	plan.Achieved = plan.Remaining == 0

	switch {
	case year > now.Year():
		plan.MonthsLeft = 12
	case year < now.Year():
		plan.MonthsLeft = 0
	default:
		plan.MonthsLeft = max(12-int(now.Month()), 1)
	}

	if plan.MonthsLeft > 0 {
		plan.MonthlySuggestion = plan.Remaining / float64(plan.MonthsLeft)
	}
	return plan
}
