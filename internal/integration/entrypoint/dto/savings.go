package dto

import (
	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// SavingsTargetRequest represents the request body of PUT /savings-targets/:year.
type SavingsTargetRequest struct {
	TargetAmount *float64 `json:"target_amount" binding:"required"`
}

// SavingsProgressResponse represents the response of the savings target endpoints.
type SavingsProgressResponse struct {
	Year              int     `json:"year"`
	TargetAmount      float64 `json:"target_amount"`
	CurrentSavings    float64 `json:"current_savings"`
	Remaining         float64 `json:"remaining"`
	MonthsLeft        int     `json:"months_left"`
	MonthlySuggestion float64 `json:"monthly_suggestion"`
	Achieved          bool    `json:"achieved"`
}

// ToSavingsProgressResponse converts a savings plan.
func ToSavingsProgressResponse(plan valueobject.SavingsPlan) SavingsProgressResponse {
	return SavingsProgressResponse{
		Year:              plan.Year,
		TargetAmount:      Money(plan.TargetAmount),
		CurrentSavings:    Money(plan.CurrentSavings),
		Remaining:         Money(plan.Remaining),
		MonthsLeft:        plan.MonthsLeft,
		MonthlySuggestion: Money(plan.MonthlySuggestion),
		Achieved:          plan.Achieved,
	}
}

// SavingsTargetResponse represents a stored savings target.
type SavingsTargetResponse struct {
	Year         int     `json:"year"`
	TargetAmount float64 `json:"target_amount"`
	UpdatedAt    string  `json:"updated_at"`
}

// ToSavingsTargetResponse converts a domain SavingsTarget.
func ToSavingsTargetResponse(t *entity.SavingsTarget) SavingsTargetResponse {
	return SavingsTargetResponse{
		Year:         t.Year,
		TargetAmount: Money(t.TargetAmount),
		UpdatedAt:    FormatTime(t.UpdatedAt),
	}
}
