package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// HouseholdRepository stores the household composition of each user.
type HouseholdRepository interface {
	// Upsert creates or replaces the household of household.UserID.
	Upsert(ctx context.Context, household *entity.Household) error

	// FindByUser returns the household of a user, or nil when none is stored.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Household, error)
}

// FinancialProfileRepository stores the declared costs and income of each user.
type FinancialProfileRepository interface {
	// Upsert creates or replaces the profile of profile.UserID.
	Upsert(ctx context.Context, profile *entity.FinancialProfile) error

	// FindByUser returns the profile of a user, or nil when none is stored.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.FinancialProfile, error)
}

// SavingsTargetRepository stores one savings target per user and year.
type SavingsTargetRepository interface {
	// Upsert creates or replaces the target for (target.UserID, target.Year).
	Upsert(ctx context.Context, target *entity.SavingsTarget) error

	// FindByUserAndYear returns the target, or nil when none is stored.
	FindByUserAndYear(ctx context.Context, userID uuid.UUID, year int) (*entity.SavingsTarget, error)
}
