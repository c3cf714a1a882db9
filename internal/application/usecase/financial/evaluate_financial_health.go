package financial

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// EvaluateFinancialHealthInput represents the input for a health evaluation.
type EvaluateFinancialHealthInput struct {
	UserID uuid.UUID
}

// EvaluateFinancialHealthOutput represents the output of a health evaluation.
type EvaluateFinancialHealthOutput struct {
	Profile   *entity.FinancialProfile
	Household entity.Household
	Health    valueobject.FinancialHealth
	// Score is nil when no prediction service is configured or it failed.
	Score *float64
}

// EvaluateFinancialHealthUseCase rates a user's profile against their household.
type EvaluateFinancialHealthUseCase struct {
	profileRepo   adapter.FinancialProfileRepository
	householdRepo adapter.HouseholdRepository
	predictor     adapter.PredictionService
}

// NewEvaluateFinancialHealthUseCase creates a new EvaluateFinancialHealthUseCase instance.
// predictor may be nil.
func NewEvaluateFinancialHealthUseCase(
	profileRepo adapter.FinancialProfileRepository,
	householdRepo adapter.HouseholdRepository,
	predictor adapter.PredictionService,
) *EvaluateFinancialHealthUseCase {
	return &EvaluateFinancialHealthUseCase{
		profileRepo:   profileRepo,
		householdRepo: householdRepo,
		predictor:     predictor,
	}
}

// Execute performs the evaluation. A user without a stored household counts as one adult.
func (uc *EvaluateFinancialHealthUseCase) Execute(ctx context.Context, input EvaluateFinancialHealthInput) (*EvaluateFinancialHealthOutput, error) {
	profile, err := loadProfile(ctx, uc.profileRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	household, err := LoadHousehold(ctx, uc.householdRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	out := &EvaluateFinancialHealthOutput{
		Profile:   profile,
		Household: household,
		Health:    valueobject.AssessFinancialHealth(*profile, household),
	}

	if uc.predictor != nil {
		score, err := uc.predictor.Predict(ctx, valueobject.ProfileFeatures(*profile, household))
		if err != nil {
			slog.WarnContext(ctx, "prediction failed", "user_id", input.UserID, "error", err)
		} else {
			out.Score = &score
		}
	}

	return out, nil
}

// LoadHousehold returns the stored household of a user, or a single adult when none is stored.
func LoadHousehold(ctx context.Context, repo adapter.HouseholdRepository, userID uuid.UUID) (entity.Household, error) {
	household, err := repo.FindByUser(ctx, userID)
	if err != nil {
		return entity.Household{}, fmt.Errorf("failed to load household: %w", err)
	}
	if household == nil {
		return entity.Household{UserID: userID, NumAdults: 1}, nil
	}
	return *household, nil
}
