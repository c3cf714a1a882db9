package savings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// GetSavingsProgressInput represents the input for reading savings progress.
type GetSavingsProgressInput struct {
	UserID uuid.UUID
	Year   int
	Now    time.Time
}

// GetSavingsProgressOutput represents savings progress for one year.
type GetSavingsProgressOutput struct {
	Target *entity.SavingsTarget
	Plan   valueobject.SavingsPlan
}

// GetSavingsProgressUseCase compares recorded savings with the year's target.
type GetSavingsProgressUseCase struct {
	targetRepo      adapter.SavingsTargetRepository
	transactionRepo adapter.TransactionRepository
	location        *time.Location
}

// NewGetSavingsProgressUseCase creates a new GetSavingsProgressUseCase instance.
// Year boundaries are taken in location.
func NewGetSavingsProgressUseCase(
	targetRepo adapter.SavingsTargetRepository,
	transactionRepo adapter.TransactionRepository,
	location *time.Location,
) *GetSavingsProgressUseCase {
	if location == nil {
		location = time.UTC
	}
	return &GetSavingsProgressUseCase{
		targetRepo:      targetRepo,
		transactionRepo: transactionRepo,
		location:        location,
	}
}

// Execute sums the savings-kind transactions of the year and builds the plan.
func (uc *GetSavingsProgressUseCase) Execute(ctx context.Context, input GetSavingsProgressInput) (*GetSavingsProgressOutput, error) {
	if err := validateYear(input.Year); err != nil {
		return nil, err
	}

	target, err := uc.targetRepo.FindByUserAndYear(ctx, input.UserID, input.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to load savings target: %w", err)
	}
	if target == nil {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeSavingsTargetNotFound,
			fmt.Sprintf("no savings target for %d", input.Year),
			domainerror.ErrSavingsTargetNotFound,
		)
	}

	start := time.Date(input.Year, time.January, 1, 0, 0, 0, 0, uc.location)
	current, err := uc.transactionRepo.SumByKind(ctx, input.UserID, entity.TransactionKindSavings, start, start.AddDate(1, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to sum savings: %w", err)
	}

	return &GetSavingsProgressOutput{
		Target: target,
		Plan:   valueobject.NewSavingsPlan(input.Year, target.TargetAmount, current, input.Now.In(uc.location)),
	}, nil
}
