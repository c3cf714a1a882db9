package dto

import "github.com/budget-tracker/backend/internal/application/usecase/advice"

// AdviceRequest represents the request body of POST /advice.
type AdviceRequest struct {
	Question string `json:"question" binding:"max=1000"`
}

// AdviceResponse represents the response of POST /advice.
type AdviceResponse struct {
	Advice string                  `json:"advice"`
	Health FinancialHealthResponse `json:"health"`
}

// ToAdviceResponse converts the output of GetAdvice.
func ToAdviceResponse(output *advice.GetAdviceOutput) AdviceResponse {
	return AdviceResponse{
		Advice: output.Advice,
		Health: ToFinancialHealthResponse(output.Health),
	}
}
