package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// SavingsTargetModel represents the savings_targets table.
type SavingsTargetModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_savings_targets_user_year"`
	Year         int             `gorm:"not null;uniqueIndex:idx_savings_targets_user_year"`
	TargetAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the SavingsTargetModel.
func (SavingsTargetModel) TableName() string {
	return "savings_targets"
}

// ToEntity converts a SavingsTargetModel to a domain SavingsTarget entity.
func (m *SavingsTargetModel) ToEntity() *entity.SavingsTarget {
	return &entity.SavingsTarget{
		ID:           m.ID,
		UserID:       m.UserID,
		Year:         m.Year,
		TargetAmount: m.TargetAmount.InexactFloat64(),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// SavingsTargetFromEntity creates a SavingsTargetModel from a domain entity.
func SavingsTargetFromEntity(t *entity.SavingsTarget) *SavingsTargetModel {
	return &SavingsTargetModel{
		ID:           t.ID,
		UserID:       t.UserID,
		Year:         t.Year,
		TargetAmount: money(t.TargetAmount),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
