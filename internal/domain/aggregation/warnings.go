package aggregation

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// Thresholds maps an expense category to the largest share of income it should take.
type Thresholds map[string]float64

// DefaultThresholds returns the recommended monthly limits, also used for yearly periods.
func DefaultThresholds() Thresholds {
	return Thresholds{
		entity.CategoryHousing:          0.3,
		entity.CategoryFood:             0.15,
		entity.CategoryTransportation:   0.15,
		entity.CategoryHealthcare:       0.1,
		entity.CategoryOtherNecessities: 0.1,
		entity.CategoryChildcare:        0.1,
		entity.CategoryTaxes:            0.25,
	}
}

// weeklyDivisor spreads a monthly share over the weeks of a month.
const weeklyDivisor = 4

// WeeklyThresholds returns the limits applied to a single week. Only the
// day-to-day categories are checked weekly, each at a quarter of its monthly share.
func WeeklyThresholds() Thresholds {
	monthly := DefaultThresholds()
	weekly := make(Thresholds, 3)
	for _, c := range []string{
		entity.CategoryFood,
		entity.CategoryTransportation,
		entity.CategoryOtherNecessities,
	} {
		weekly[c] = monthly[c] / weeklyDivisor
	}
	return weekly
}

// ThresholdsFor returns the default table for granularity g.
func ThresholdsFor(g Granularity) Thresholds {
	if g == GranularityWeekly {
		return WeeklyThresholds()
	}
	return DefaultThresholds()
}

// ThresholdTable holds one threshold table per granularity.
type ThresholdTable struct {
	Weekly  Thresholds
	Monthly Thresholds
	Yearly  Thresholds
}

// DefaultThresholdTable returns the built-in tables of every granularity.
func DefaultThresholdTable() ThresholdTable {
	return ThresholdTable{
		Weekly:  WeeklyThresholds(),
		Monthly: DefaultThresholds(),
		Yearly:  DefaultThresholds(),
	}
}

// For returns the table used for granularity g.
func (t ThresholdTable) For(g Granularity) Thresholds {
	switch g {
	case GranularityWeekly:
		return t.Weekly
	case GranularityYearly:
		return t.Yearly
	}
	return t.Monthly
}

// Override returns a copy of t where each non-empty table of overrides is merged
// over the table of the same granularity.
func (t ThresholdTable) Override(overrides ThresholdTable) ThresholdTable {
	return ThresholdTable{
		Weekly:  t.Weekly.Merge(overrides.Weekly),
		Monthly: t.Monthly.Merge(overrides.Monthly),
		Yearly:  t.Yearly.Merge(overrides.Yearly),
	}
}

// Merge returns a copy of t with overrides applied on top.
func (t Thresholds) Merge(overrides Thresholds) Thresholds {
	out := make(Thresholds, len(t)+len(overrides))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// CategoryWarning reports a category whose spending exceeds its share of income.
type CategoryWarning struct {
	Category         string
	Amount           float64
	ActualPercent    float64
	ThresholdPercent float64
}

// Message renders the warning for display. The actual share has one decimal
// place; the threshold keeps up to two so weekly limits such as 3.75% stay exact.
func (w CategoryWarning) Message() string {
	return fmt.Sprintf("Your %s expenses are %.1f%% of your income, exceeding the recommended %s%%.",
		displayCategory(w.Category), w.ActualPercent, formatThreshold(w.ThresholdPercent))
}

func formatThreshold(percent float64) string {
	rounded := math.Round(percent*100) / 100
	if rounded == math.Trunc(rounded) {
		return strconv.FormatFloat(rounded, 'f', 1, 64)
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// WarningReport is the outcome of evaluating one period against a threshold table.
//
// When the period has no income, percentages are meaningless: NoIncomeRecorded is
// set, Warnings stays empty, and Unmeasured lists the thresholded categories that
// had spending.
type WarningReport struct {
	Warnings         []CategoryWarning
	NoIncomeRecorded bool
	Unmeasured       []string
}

// HasWarnings reports whether the report carries anything worth showing.
func (r WarningReport) HasWarnings() bool {
	return len(r.Warnings) > 0 || r.NoIncomeRecorded
}

// Messages renders every warning of the report.
func (r WarningReport) Messages() []string {
	messages := make([]string, 0, len(r.Warnings)+1)
	if r.NoIncomeRecorded {
		names := make([]string, len(r.Unmeasured))
		for i, c := range r.Unmeasured {
			names[i] = displayCategory(c)
		}
		messages = append(messages, fmt.Sprintf(
			"No income recorded for this period, so spending on %s cannot be compared with the recommended limits.",
			strings.Join(names, ", ")))
	}
	for _, w := range r.Warnings {
		messages = append(messages, w.Message())
	}
	return messages
}

// EvaluateWarnings compares each category of expensesByCategory with its threshold.
//
// Categories without a positive threshold are skipped. A warning fires when
// amount > threshold * totalIncome. Results are sorted by category name.
func EvaluateWarnings(expensesByCategory map[string]float64, totalIncome float64, thresholds Thresholds) WarningReport {
	categories := make([]string, 0, len(expensesByCategory))
	for c := range expensesByCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var report WarningReport
	for _, category := range categories {
		threshold := thresholds[category]
		if threshold <= 0 {
			continue
		}
		amount := expensesByCategory[category]

		if totalIncome <= 0 {
			if amount > 0 {
				report.Unmeasured = append(report.Unmeasured, category)
			}
			continue
		}

		if amount > threshold*totalIncome {
			report.Warnings = append(report.Warnings, CategoryWarning{
				Category:         category,
				Amount:           amount,
				ActualPercent:    amount / totalIncome * 100,
				ThresholdPercent: threshold * 100,
			})
		}
	}
	report.NoIncomeRecorded = len(report.Unmeasured) > 0

	return report
}

// EvaluateSummary evaluates s against thresholds.
func EvaluateSummary(s PeriodSummary, thresholds Thresholds) WarningReport {
	return EvaluateWarnings(s.ExpensesByCategory, s.TotalIncome, thresholds)
}

func displayCategory(category string) string {
	return strings.ReplaceAll(category, "_", " ")
}
