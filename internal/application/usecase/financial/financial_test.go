package financial

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

type memoryProfiles map[uuid.UUID]entity.FinancialProfile

func (m memoryProfiles) Upsert(_ context.Context, p *entity.FinancialProfile) error {
	m[p.UserID] = *p
	return nil
}

func (m memoryProfiles) FindByUser(_ context.Context, userID uuid.UUID) (*entity.FinancialProfile, error) {
	p, ok := m[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

type memoryHouseholds map[uuid.UUID]entity.Household

func (m memoryHouseholds) Upsert(_ context.Context, h *entity.Household) error {
	m[h.UserID] = *h
	return nil
}

func (m memoryHouseholds) FindByUser(_ context.Context, userID uuid.UUID) (*entity.Household, error) {
	h, ok := m[userID]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

type stubPredictor struct {
	score    float64
	err      error
	received []float64
}

func (s *stubPredictor) Predict(_ context.Context, features []float64) (float64, error) {
	s.received = features
	return s.score, s.err
}

func householdCode(t *testing.T, err error) domainerror.HouseholdErrorCode {
	t.Helper()
	var hhdErr *domainerror.HouseholdError
	require.True(t, errors.As(err, &hhdErr), "expected HouseholdError, got %v", err)
	return hhdErr.Code
}

func TestSetFinancialProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo := memoryProfiles{}
	uc := NewSetFinancialProfileUseCase(repo)

	out, err := uc.Execute(ctx, SetFinancialProfileInput{
		UserID: userID, HousingCost: 1500, FoodCost: 600, Taxes: 900, MedianFamilyIncome: 6000,
	})
	require.NoError(t, err)
	assert.Equal(t, 3000.0, out.Profile.TotalExpenses)
	assert.Equal(t, 3000.0, repo[userID].TotalExpenses)

	_, err = uc.Execute(ctx, SetFinancialProfileInput{UserID: userID, FoodCost: -1, MedianFamilyIncome: 6000})
	assert.Equal(t, domainerror.ErrCodeNegativeCost, householdCode(t, err))

	_, err = uc.Execute(ctx, SetFinancialProfileInput{UserID: userID, FoodCost: 1})
	assert.Equal(t, domainerror.ErrCodeInvalidIncome, householdCode(t, err))

	got, err := NewGetFinancialProfileUseCase(repo).Execute(ctx, GetFinancialProfileInput{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, 1500.0, got.Profile.HousingCost)

	_, err = NewGetFinancialProfileUseCase(repo).Execute(ctx, GetFinancialProfileInput{UserID: uuid.New()})
	assert.Equal(t, domainerror.ErrCodeFinancialProfileNotFound, householdCode(t, err))
}

func TestEvaluateFinancialHealth(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	profiles := memoryProfiles{userID: {
		UserID: userID, HousingCost: 2000, FoodCost: 500, TotalExpenses: 3600, MedianFamilyIncome: 6000,
	}}
	households := memoryHouseholds{}

	t.Run("single adult by default", func(t *testing.T) {
		predictor := &stubPredictor{score: 0.8}
		out, err := NewEvaluateFinancialHealthUseCase(profiles, households, predictor).
			Execute(ctx, EvaluateFinancialHealthInput{UserID: userID})
		require.NoError(t, err)

		// 3600 / 6000 = 0.6 lands in Good without dependents.
		assert.Equal(t, valueobject.HealthRatingGood, out.Health.Rating)
		assert.Equal(t, 1, out.Household.NumAdults)
		assert.Equal(t, []string{"Housing costs are too high."}, out.Health.Suggestions)
		require.NotNil(t, out.Score)
		assert.Equal(t, 0.8, *out.Score)
		assert.Len(t, predictor.received, valueobject.ProfileFeatureCount)
	})

	t.Run("children relax the rating", func(t *testing.T) {
		households[userID] = entity.Household{UserID: userID, NumAdults: 2, NumChildren: 1}
		out, err := NewEvaluateFinancialHealthUseCase(profiles, households, nil).
			Execute(ctx, EvaluateFinancialHealthInput{UserID: userID})
		require.NoError(t, err)

		// 0.6 < 0.5 * 1.3 = 0.65
		assert.Equal(t, valueobject.HealthRatingExcellent, out.Health.Rating)
		assert.Nil(t, out.Score)
	})

	t.Run("prediction failure is not fatal", func(t *testing.T) {
		out, err := NewEvaluateFinancialHealthUseCase(profiles, households, &stubPredictor{err: errors.New("boom")}).
			Execute(ctx, EvaluateFinancialHealthInput{UserID: userID})
		require.NoError(t, err)
		assert.Nil(t, out.Score)
	})

	t.Run("missing profile", func(t *testing.T) {
		_, err := NewEvaluateFinancialHealthUseCase(profiles, households, nil).
			Execute(ctx, EvaluateFinancialHealthInput{UserID: uuid.New()})
		assert.Equal(t, domainerror.ErrCodeFinancialProfileNotFound, householdCode(t, err))
	})
}
