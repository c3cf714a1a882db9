package dto

import (
	"github.com/budget-tracker/backend/internal/application/usecase/financial"
	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// FinancialProfileRequest represents the request body of PUT /financial-profile.
// TotalExpenses is optional and derived from the costs when omitted.
type FinancialProfileRequest struct {
	HousingCost          float64  `json:"housing_cost"`
	FoodCost             float64  `json:"food_cost"`
	TransportationCost   float64  `json:"transportation_cost"`
	HealthcareCost       float64  `json:"healthcare_cost"`
	OtherNecessitiesCost float64  `json:"other_necessities_cost"`
	ChildcareCost        float64  `json:"childcare_cost"`
	Taxes                float64  `json:"taxes"`
	TotalExpenses        float64  `json:"total_expenses"`
	MedianFamilyIncome   *float64 `json:"median_family_income" binding:"required"`
}

// FinancialProfileResponse represents a financial profile in API responses.
type FinancialProfileResponse struct {
	HousingCost          float64 `json:"housing_cost"`
	FoodCost             float64 `json:"food_cost"`
	TransportationCost   float64 `json:"transportation_cost"`
	HealthcareCost       float64 `json:"healthcare_cost"`
	OtherNecessitiesCost float64 `json:"other_necessities_cost"`
	ChildcareCost        float64 `json:"childcare_cost"`
	Taxes                float64 `json:"taxes"`
	TotalExpenses        float64 `json:"total_expenses"`
	MedianFamilyIncome   float64 `json:"median_family_income"`
	UpdatedAt            string  `json:"updated_at"`
}

// ToFinancialProfileResponse converts a domain FinancialProfile to its response DTO.
func ToFinancialProfileResponse(p *entity.FinancialProfile) FinancialProfileResponse {
	return FinancialProfileResponse{
		HousingCost:          Money(p.HousingCost),
		FoodCost:             Money(p.FoodCost),
		TransportationCost:   Money(p.TransportationCost),
		HealthcareCost:       Money(p.HealthcareCost),
		OtherNecessitiesCost: Money(p.OtherNecessitiesCost),
		ChildcareCost:        Money(p.ChildcareCost),
		Taxes:                Money(p.Taxes),
		TotalExpenses:        Money(p.Total()),
		MedianFamilyIncome:   Money(p.MedianFamilyIncome),
		UpdatedAt:            FormatTime(p.UpdatedAt),
	}
}

// FinancialHealthResponse represents the rating of a profile.
type FinancialHealthResponse struct {
	Rating          string   `json:"rating"`
	ExpenseRatio    float64  `json:"expense_ratio"`
	DependentFactor float64  `json:"dependent_factor"`
	Suggestions     []string `json:"suggestions"`
}

// ToFinancialHealthResponse converts a FinancialHealth value.
func ToFinancialHealthResponse(h valueobject.FinancialHealth) FinancialHealthResponse {
	return FinancialHealthResponse{
		Rating:          string(h.Rating),
		ExpenseRatio:    roundRatio(h.ExpenseRatio),
		DependentFactor: roundRatio(h.DependentFactor),
		Suggestions:     h.Suggestions,
	}
}

// HealthEvaluationResponse represents the response of GET /financial-profile/health.
type HealthEvaluationResponse struct {
	Household HouseholdResponse       `json:"household"`
	Health    FinancialHealthResponse `json:"health"`
	Score     *float64                `json:"score"`
}

// ToHealthEvaluationResponse converts the output of EvaluateFinancialHealth.
func ToHealthEvaluationResponse(output *financial.EvaluateFinancialHealthOutput) HealthEvaluationResponse {
	var score *float64
	if output.Score != nil {
		s := roundRatio(*output.Score)
		score = &s
	}
	return HealthEvaluationResponse{
		Household: ToHouseholdResponse(output.Household),
		Health:    ToFinancialHealthResponse(output.Health),
		Score:     score,
	}
}

func roundRatio(v float64) float64 {
	return decimalRound(v, 4)
}
