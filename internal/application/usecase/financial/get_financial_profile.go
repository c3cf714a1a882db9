package financial

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// GetFinancialProfileInput represents the input for reading a financial profile.
type GetFinancialProfileInput struct {
	UserID uuid.UUID
}

// GetFinancialProfileOutput represents the output of reading a financial profile.
type GetFinancialProfileOutput struct {
	Profile *entity.FinancialProfile
}

// GetFinancialProfileUseCase returns a user's financial profile.
type GetFinancialProfileUseCase struct {
	profileRepo adapter.FinancialProfileRepository
}

// NewGetFinancialProfileUseCase creates a new GetFinancialProfileUseCase instance.
func NewGetFinancialProfileUseCase(profileRepo adapter.FinancialProfileRepository) *GetFinancialProfileUseCase {
	return &GetFinancialProfileUseCase{
		profileRepo: profileRepo,
	}
}

// Execute returns the profile or a not-found error.
func (uc *GetFinancialProfileUseCase) Execute(ctx context.Context, input GetFinancialProfileInput) (*GetFinancialProfileOutput, error) {
	profile, err := loadProfile(ctx, uc.profileRepo, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetFinancialProfileOutput{Profile: profile}, nil
}

func loadProfile(ctx context.Context, repo adapter.FinancialProfileRepository, userID uuid.UUID) (*entity.FinancialProfile, error) {
	profile, err := repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load financial profile: %w", err)
	}
	if profile == nil {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeFinancialProfileNotFound,
			"financial profile not found",
			domainerror.ErrFinancialProfileNotFound,
		)
	}
	return profile, nil
}
