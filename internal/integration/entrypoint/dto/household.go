package dto

import "github.com/budget-tracker/backend/internal/domain/entity"

// HouseholdRequest represents the request body of PUT /household.
type HouseholdRequest struct {
	NumAdults   *int `json:"num_adults" binding:"required"`
	NumChildren *int `json:"num_children" binding:"required"`
}

// HouseholdResponse represents a household in API responses.
type HouseholdResponse struct {
	NumAdults   int    `json:"num_adults"`
	NumChildren int    `json:"num_children"`
	Members     int    `json:"members"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// ToHouseholdResponse converts a domain Household to its response DTO.
func ToHouseholdResponse(h entity.Household) HouseholdResponse {
	out := HouseholdResponse{
		NumAdults:   h.NumAdults,
		NumChildren: h.NumChildren,
		Members:     h.Members(),
	}
	if !h.UpdatedAt.IsZero() {
		out.UpdatedAt = FormatTime(h.UpdatedAt)
	}
	return out
}
