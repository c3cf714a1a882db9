package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

type householdRepository struct {
	db *gorm.DB
}

// NewHouseholdRepository creates a new household repository instance.
func NewHouseholdRepository(db *gorm.DB) adapter.HouseholdRepository {
	return &householdRepository{db: db}
}

func (r *householdRepository) Upsert(ctx context.Context, household *entity.Household) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"num_adults", "num_children", "updated_at"}),
		}).
		Create(model.HouseholdFromEntity(household)).Error
}

func (r *householdRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Household, error) {
	var householdModel model.HouseholdModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&householdModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return householdModel.ToEntity(), nil
}

type financialProfileRepository struct {
	db *gorm.DB
}

// NewFinancialProfileRepository creates a new financial profile repository instance.
func NewFinancialProfileRepository(db *gorm.DB) adapter.FinancialProfileRepository {
	return &financialProfileRepository{db: db}
}

func (r *financialProfileRepository) Upsert(ctx context.Context, profile *entity.FinancialProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(model.FinancialProfileFromEntity(profile)).Error
}

func (r *financialProfileRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.FinancialProfile, error) {
	var profileModel model.FinancialProfileModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return profileModel.ToEntity(), nil
}

type savingsTargetRepository struct {
	db *gorm.DB
}

// NewSavingsTargetRepository creates a new savings target repository instance.
func NewSavingsTargetRepository(db *gorm.DB) adapter.SavingsTargetRepository {
	return &savingsTargetRepository{db: db}
}

func (r *savingsTargetRepository) Upsert(ctx context.Context, target *entity.SavingsTarget) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{"target_amount", "updated_at"}),
		}).
		Create(model.SavingsTargetFromEntity(target)).Error
}

func (r *savingsTargetRepository) FindByUserAndYear(ctx context.Context, userID uuid.UUID, year int) (*entity.SavingsTarget, error) {
	var targetModel model.SavingsTargetModel
	result := r.db.WithContext(ctx).Where("user_id = ? AND year = ?", userID, year).First(&targetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return targetModel.ToEntity(), nil
}
