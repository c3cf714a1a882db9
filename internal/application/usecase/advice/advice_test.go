package advice

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

type stubAdvice struct {
	available bool
	answer    string
	err       error
	prompts   []string
}

func (s *stubAdvice) GenerateAdvice(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.answer, s.err
}

func (s *stubAdvice) IsAvailable() bool { return s.available }

func adviceCode(t *testing.T, err error) domainerror.AdviceErrorCode {
	t.Helper()
	var adviceErr *domainerror.AdviceError
	require.True(t, errors.As(err, &adviceErr), "expected AdviceError, got %v", err)
	return adviceErr.Code
}

func TestGetAdvice(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	profiles := memoryProfiles{userID: {
		UserID: userID, HousingCost: 1500, FoodCost: 600, Taxes: 900, MedianFamilyIncome: 6000,
	}}
	households := memoryHouseholds{userID: {UserID: userID, NumAdults: 2, NumChildren: 2}}

	t.Run("returns the answer", func(t *testing.T) {
		service := &stubAdvice{available: true, answer: "  Cook at home more often.  "}
		out, err := NewGetAdviceUseCase(profiles, households, service).
			Execute(ctx, GetAdviceInput{UserID: userID, Question: "Should we refinance?"})
		require.NoError(t, err)
		assert.Equal(t, "Cook at home more often.", out.Advice)
		assert.Equal(t, valueobject.HealthRatingExcellent, out.Health.Rating)

		require.Len(t, service.prompts, 1)
		prompt := service.prompts[0]
		assert.Contains(t, prompt, "2 adults and 2 children")
		assert.Contains(t, prompt, "housing cost of $1500.00")
		assert.Contains(t, prompt, "totaling $3000.00 in expenses")
		assert.Contains(t, prompt, "from 'Excellent'")
		assert.Contains(t, prompt, "Should we refinance?")
	})

	t.Run("empty answer", func(t *testing.T) {
		out, err := NewGetAdviceUseCase(profiles, households, &stubAdvice{available: true}).
			Execute(ctx, GetAdviceInput{UserID: userID})
		require.NoError(t, err)
		assert.Equal(t, NoAdvice, out.Advice)
	})

	t.Run("service not configured", func(t *testing.T) {
		_, err := NewGetAdviceUseCase(profiles, households, &stubAdvice{}).Execute(ctx, GetAdviceInput{UserID: userID})
		assert.Equal(t, domainerror.ErrCodeAdviceUnavailable, adviceCode(t, err))

		_, err = NewGetAdviceUseCase(profiles, households, nil).Execute(ctx, GetAdviceInput{UserID: userID})
		assert.Equal(t, domainerror.ErrCodeAdviceUnavailable, adviceCode(t, err))
	})

	t.Run("missing profile", func(t *testing.T) {
		_, err := NewGetAdviceUseCase(profiles, households, &stubAdvice{available: true}).
			Execute(ctx, GetAdviceInput{UserID: uuid.New()})
		assert.Equal(t, domainerror.ErrCodeMissingProfile, adviceCode(t, err))
	})

	t.Run("rate limited", func(t *testing.T) {
		service := &stubAdvice{available: true, err: errors.New("googleapi: Error 429: Resource has been exhausted")}
		_, err := NewGetAdviceUseCase(profiles, households, service).Execute(ctx, GetAdviceInput{UserID: userID})
		assert.Equal(t, domainerror.ErrCodeAdviceRateLimited, adviceCode(t, err))
	})
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    domainerror.AdviceErrorCode
		message string
	}{
		{"deadline", context.DeadlineExceeded, domainerror.ErrCodeAdviceUnavailable, msgUnavailable},
		{"rate limit", errors.New("rate limit exceeded"), domainerror.ErrCodeAdviceRateLimited, msgRateLimited},
		{"quota", errors.New("quota exceeded"), domainerror.ErrCodeAdviceRateLimited, msgRateLimited},
		{"429", errors.New("HTTP 429: too many requests"), domainerror.ErrCodeAdviceRateLimited, msgRateLimited},
		{"401", errors.New("401 unauthorized"), domainerror.ErrCodeAdviceUnavailable, msgUnauthorized},
		{"bad key", errors.New("invalid api key"), domainerror.ErrCodeAdviceUnavailable, msgUnauthorized},
		{"connection", errors.New("connection refused"), domainerror.ErrCodeAdviceUnavailable, msgUnavailable},
		{"503", errors.New("503 service unavailable"), domainerror.ErrCodeAdviceUnavailable, msgUnavailable},
		{"other", errors.New("something odd"), domainerror.ErrCodeAdviceFailed, msgFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := classifyError(tt.err)
			assert.Equal(t, tt.code, classified.Code)
			assert.Equal(t, tt.message, classified.Message)
			assert.ErrorIs(t, classified, tt.err)
		})
	}
}
