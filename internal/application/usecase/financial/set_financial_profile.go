// Package financial contains the use cases around a user's declared costs and income.
package financial

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// SetFinancialProfileInput represents the input for saving a financial profile.
// TotalExpenses may be zero, in which case it is derived from the costs.
type SetFinancialProfileInput struct {
	UserID               uuid.UUID
	HousingCost          float64
	FoodCost             float64
	TransportationCost   float64
	HealthcareCost       float64
	OtherNecessitiesCost float64
	ChildcareCost        float64
	Taxes                float64
	TotalExpenses        float64
	MedianFamilyIncome   float64
}

// SetFinancialProfileOutput represents the output of saving a financial profile.
type SetFinancialProfileOutput struct {
	Profile *entity.FinancialProfile
}

// SetFinancialProfileUseCase creates or replaces a user's financial profile.
type SetFinancialProfileUseCase struct {
	profileRepo adapter.FinancialProfileRepository
}

// NewSetFinancialProfileUseCase creates a new SetFinancialProfileUseCase instance.
func NewSetFinancialProfileUseCase(profileRepo adapter.FinancialProfileRepository) *SetFinancialProfileUseCase {
	return &SetFinancialProfileUseCase{
		profileRepo: profileRepo,
	}
}

// Execute performs the upsert.
func (uc *SetFinancialProfileUseCase) Execute(ctx context.Context, input SetFinancialProfileInput) (*SetFinancialProfileOutput, error) {
	costs := []float64{
		input.HousingCost,
		input.FoodCost,
		input.TransportationCost,
		input.HealthcareCost,
		input.OtherNecessitiesCost,
		input.ChildcareCost,
		input.Taxes,
		input.TotalExpenses,
	}
	for _, c := range costs {
		if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, domainerror.NewHouseholdError(
				domainerror.ErrCodeNegativeCost,
				"costs must be zero or positive numbers",
				domainerror.ErrNegativeCost,
			)
		}
	}

	if !(input.MedianFamilyIncome > 0) || math.IsInf(input.MedianFamilyIncome, 0) {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeInvalidIncome,
			"median_family_income must be greater than zero",
			domainerror.ErrInvalidIncome,
		)
	}

	profile := &entity.FinancialProfile{
		UserID:               input.UserID,
		HousingCost:          input.HousingCost,
		FoodCost:             input.FoodCost,
		TransportationCost:   input.TransportationCost,
		HealthcareCost:       input.HealthcareCost,
		OtherNecessitiesCost: input.OtherNecessitiesCost,
		ChildcareCost:        input.ChildcareCost,
		Taxes:                input.Taxes,
		TotalExpenses:        input.TotalExpenses,
		MedianFamilyIncome:   input.MedianFamilyIncome,
		UpdatedAt:            time.Now().UTC(),
	}
	profile.TotalExpenses = profile.Total()

	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save financial profile: %w", err)
	}

	return &SetFinancialProfileOutput{Profile: profile}, nil
}
