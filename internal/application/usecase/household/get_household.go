package household

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// GetHouseholdInput represents the input for reading a household.
type GetHouseholdInput struct {
	UserID uuid.UUID
}

// GetHouseholdOutput represents the output of reading a household.
type GetHouseholdOutput struct {
	Household *entity.Household
}

// GetHouseholdUseCase returns a user's household.
type GetHouseholdUseCase struct {
	householdRepo adapter.HouseholdRepository
}

// NewGetHouseholdUseCase creates a new GetHouseholdUseCase instance.
func NewGetHouseholdUseCase(householdRepo adapter.HouseholdRepository) *GetHouseholdUseCase {
	return &GetHouseholdUseCase{
		householdRepo: householdRepo,
	}
}

// Execute returns the household or a not-found error.
func (uc *GetHouseholdUseCase) Execute(ctx context.Context, input GetHouseholdInput) (*GetHouseholdOutput, error) {
	household, err := uc.householdRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load household: %w", err)
	}
	if household == nil {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeHouseholdNotFound,
			"household not found",
			domainerror.ErrHouseholdNotFound,
		)
	}

	return &GetHouseholdOutput{Household: household}, nil
}
