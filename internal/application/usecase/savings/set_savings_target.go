// Package savings contains the use cases around yearly savings targets.
package savings

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

const (
	minYear = 1970
	maxYear = 9999
)

// SetSavingsTargetInput represents the input for saving a savings target.
type SetSavingsTargetInput struct {
	UserID       uuid.UUID
	Year         int
	TargetAmount float64
}

// SetSavingsTargetOutput represents the output of saving a savings target.
type SetSavingsTargetOutput struct {
	Target *entity.SavingsTarget
}

// SetSavingsTargetUseCase creates or replaces the target of a user for a year.
type SetSavingsTargetUseCase struct {
	targetRepo adapter.SavingsTargetRepository
}

// NewSetSavingsTargetUseCase creates a new SetSavingsTargetUseCase instance.
func NewSetSavingsTargetUseCase(targetRepo adapter.SavingsTargetRepository) *SetSavingsTargetUseCase {
	return &SetSavingsTargetUseCase{
		targetRepo: targetRepo,
	}
}

// Execute performs the upsert.
func (uc *SetSavingsTargetUseCase) Execute(ctx context.Context, input SetSavingsTargetInput) (*SetSavingsTargetOutput, error) {
	if err := validateYear(input.Year); err != nil {
		return nil, err
	}

	if !(input.TargetAmount > 0) || math.IsInf(input.TargetAmount, 0) {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeInvalidSavingsTarget,
			"target_amount must be greater than zero",
			domainerror.ErrInvalidSavingsTarget,
		)
	}

	target, err := uc.targetRepo.FindByUserAndYear(ctx, input.UserID, input.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to load savings target: %w", err)
	}
	if target == nil {
		target = entity.NewSavingsTarget(input.UserID, input.Year, input.TargetAmount)
	} else {
		target.TargetAmount = input.TargetAmount
		target.UpdatedAt = time.Now().UTC()
	}

	if err := uc.targetRepo.Upsert(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to save savings target: %w", err)
	}

	return &SetSavingsTargetOutput{Target: target}, nil
}

func validateYear(year int) error {
	if year < minYear || year > maxYear {
		return domainerror.NewHouseholdError(
			domainerror.ErrCodeInvalidYear,
			fmt.Sprintf("year must be between %d and %d", minYear, maxYear),
			domainerror.ErrInvalidYear,
		)
	}
	return nil
}
