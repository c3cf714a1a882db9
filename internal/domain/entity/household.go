package entity

import (
	"time"

	"github.com/google/uuid"
)

// Household describes who lives on a user's budget.
type Household struct {
	UserID      uuid.UUID
	NumAdults   int
	NumChildren int
	UpdatedAt   time.Time
}

// Members returns the number of people sharing the budget, never less than one.
func (h Household) Members() int {
	if n := h.NumAdults + h.NumChildren; n > 0 {
		return n
	}
	return 1
}
