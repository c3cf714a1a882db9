// Package household contains the use cases that manage a user's household composition.
package household

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// SetHouseholdInput represents the input for saving a household.
type SetHouseholdInput struct {
	UserID      uuid.UUID
	NumAdults   int
	NumChildren int
}

// SetHouseholdOutput represents the output of saving a household.
type SetHouseholdOutput struct {
	Household *entity.Household
}

// SetHouseholdUseCase creates or replaces a user's household.
type SetHouseholdUseCase struct {
	householdRepo adapter.HouseholdRepository
}

// NewSetHouseholdUseCase creates a new SetHouseholdUseCase instance.
func NewSetHouseholdUseCase(householdRepo adapter.HouseholdRepository) *SetHouseholdUseCase {
	return &SetHouseholdUseCase{
		householdRepo: householdRepo,
	}
}

// Execute performs the upsert.
func (uc *SetHouseholdUseCase) Execute(ctx context.Context, input SetHouseholdInput) (*SetHouseholdOutput, error) {
	if input.NumAdults < 1 || input.NumChildren < 0 {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeInvalidHouseholdSize,
			"num_adults must be at least 1 and num_children cannot be negative",
			domainerror.ErrInvalidHouseholdSize,
		)
	}

	household := &entity.Household{
		UserID:      input.UserID,
		NumAdults:   input.NumAdults,
		NumChildren: input.NumChildren,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := uc.householdRepo.Upsert(ctx, household); err != nil {
		return nil, fmt.Errorf("failed to save household: %w", err)
	}

	return &SetHouseholdOutput{Household: household}, nil
}
