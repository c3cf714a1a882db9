// Package aggregation folds a flat list of transactions into weekly, monthly and
// yearly period summaries with per-category breakdowns.
//
// Every function in this package is pure: inputs are never mutated, outputs are
// freshly allocated, and no function reads the wall clock.
package aggregation

import (
	"fmt"
	"time"
)

// Granularity is the size of the period a summary covers.
type Granularity string

const (
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
	GranularityYearly  Granularity = "yearly"
)

// Granularities returns every supported granularity, finest first.
func Granularities() []Granularity {
	return []Granularity{GranularityWeekly, GranularityMonthly, GranularityYearly}
}

// IsValid reports whether g is a supported granularity.
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityWeekly, GranularityMonthly, GranularityYearly:
		return true
	}
	return false
}

// Key returns the period key of t for this granularity, or "" when g is unknown.
func (g Granularity) Key(t time.Time) string {
	switch g {
	case GranularityWeekly:
		return WeekKey(t)
	case GranularityMonthly:
		return MonthKey(t)
	case GranularityYearly:
		return YearKey(t)
	}
	return ""
}

// WeekNumber returns the 1-based week of the year of t.
//
// Weeks run Sunday to Saturday. Week 1 starts on January 1st whatever its weekday and
// ends on the first Saturday, so the number is
// ceil((daysSinceJan1 + weekdayOfJan1 + 1) / 7) with Sunday = 0.
// This is not ISO-8601 week numbering.
func WeekNumber(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	daysSinceJan1 := t.YearDay() - 1
	return ceilDiv(daysSinceJan1+int(jan1.Weekday())+1, 7)
}

// WeekKey returns the weekly period key of t, e.g. "Week 12 2025".
func WeekKey(t time.Time) string {
	return fmt.Sprintf("Week %d %s", WeekNumber(t), t.Format("2006"))
}

// MonthKey returns the monthly period key of t, e.g. "Mar 2025".
// Month abbreviations are always English.
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// YearKey returns the yearly period key of t, e.g. "2025".
func YearKey(t time.Time) string {
	return t.Format(yearKeyLayout)
}

const (
	monthKeyLayout = "Jan 2006"
	yearKeyLayout  = "2006"
)

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
