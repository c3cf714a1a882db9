package entity

import (
	"time"

	"github.com/google/uuid"
)

// SavingsTarget is the amount a user wants to put aside during a calendar year.
type SavingsTarget struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Year         int
	TargetAmount float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewSavingsTarget creates a new SavingsTarget.
func NewSavingsTarget(userID uuid.UUID, year int, targetAmount float64) *SavingsTarget {
	now := time.Now().UTC()
	return &SavingsTarget{
		ID:           uuid.New(),
		UserID:       userID,
		Year:         year,
		TargetAmount: targetAmount,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
