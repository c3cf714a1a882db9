// Package valueobject contains domain value objects for the Budget Tracker system.
package valueobject

import (
	"github.com/budget-tracker/backend/internal/domain/aggregation"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// HealthRating grades how comfortably a household's expenses fit its income.
type HealthRating string

const (
	HealthRatingExcellent HealthRating = "Excellent"
	HealthRatingGood      HealthRating = "Good"
	HealthRatingFair      HealthRating = "Fair"
	HealthRatingPoor      HealthRating = "Poor"
)

// Expense-to-income ratios below which each rating applies, before the dependent adjustment.
const (
	excellentRatio = 0.5
	goodRatio      = 0.7
	fairRatio      = 0.85

	// Each child raises the acceptable ratio by 30%.
	perChildAllowance = 0.3
)

// FinancialHealth is the assessment of a financial profile.
type FinancialHealth struct {
	Rating          HealthRating
	ExpenseRatio    float64
	DependentFactor float64
	Suggestions     []string
}

// AllWithinLimits is the suggestion given when no category is over its limit.
const AllWithinLimits = "All expenses are within acceptable limits."

// AssessFinancialHealth rates profile for the given household.
func AssessFinancialHealth(profile entity.FinancialProfile, household entity.Household) FinancialHealth {
	factor := 1 + perChildAllowance*float64(max(household.NumChildren, 0))

	health := FinancialHealth{
		DependentFactor: factor,
		Suggestions:     ExpenseSuggestions(profile),
	}

	if profile.MedianFamilyIncome <= 0 {
		health.Rating = HealthRatingPoor
		return health
	}

	health.ExpenseRatio = profile.Total() / profile.MedianFamilyIncome
	switch {
	case health.ExpenseRatio < excellentRatio*factor:
		health.Rating = HealthRatingExcellent
	case health.ExpenseRatio < goodRatio*factor:
		health.Rating = HealthRatingGood
	case health.ExpenseRatio < fairRatio*factor:
		health.Rating = HealthRatingFair
	default:
		health.Rating = HealthRatingPoor
	}
	return health
}

var suggestionOrder = []struct {
	category string
	text     string
}{
	{entity.CategoryHousing, "Housing costs are too high."},
	{entity.CategoryFood, "Food costs are too high."},
	{entity.CategoryTransportation, "Transportation costs are too high."},
	{entity.CategoryHealthcare, "Healthcare costs are too high."},
	{entity.CategoryOtherNecessities, "Other necessities are too high."},
	{entity.CategoryChildcare, "Childcare costs are too high."},
	{entity.CategoryTaxes, "Tax liability is too high."},
}

// ExpenseSuggestions lists the declared costs that exceed their recommended share
// of the reference income. It returns AllWithinLimits alone when nothing does.
func ExpenseSuggestions(profile entity.FinancialProfile) []string {
	thresholds := aggregation.DefaultThresholds()
	costs := profile.CostsByCategory()

	var suggestions []string
	for _, s := range suggestionOrder {
		if costs[s.category] > thresholds[s.category]*profile.MedianFamilyIncome {
			suggestions = append(suggestions, s.text)
		}
	}
	if len(suggestions) == 0 {
		return []string{AllWithinLimits}
	}
	return suggestions
}

// ProfileFeatureCount is the length of the vector returned by ProfileFeatures.
const ProfileFeatureCount = 10

// ProfileFeatures turns a profile and household into the vector scored by the
// prediction service: the seven cost ratios, the total ratio, adults and children.
// Ratios are zero when no income is declared.
func ProfileFeatures(profile entity.FinancialProfile, household entity.Household) []float64 {
	features := make([]float64, 0, ProfileFeatureCount)
	ratio := func(v float64) float64 {
		if profile.MedianFamilyIncome <= 0 {
			return 0
		}
		return v / profile.MedianFamilyIncome
	}
	costs := profile.CostsByCategory()
	for _, s := range suggestionOrder {
		features = append(features, ratio(costs[s.category]))
	}
	features = append(features,
		ratio(profile.Total()),
		float64(household.NumAdults),
		float64(household.NumChildren),
	)
	return features
}
