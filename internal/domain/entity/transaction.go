// Package entity defines the core business entities for the domain layer.
package entity

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// TransactionKind represents the kind of a transaction.
type TransactionKind string

const (
	TransactionKindIncome  TransactionKind = "income"
	TransactionKindExpense TransactionKind = "expense"
	TransactionKindSavings TransactionKind = "savings"
)

// IsValid reports whether the kind is one of the known kinds.
func (k TransactionKind) IsValid() bool {
	switch k {
	case TransactionKindIncome, TransactionKindExpense, TransactionKindSavings:
		return true
	}
	return false
}

// Expense categories.
const (
	CategoryHousing          = "housing"
	CategoryFood             = "food"
	CategoryTransportation   = "transportation"
	CategoryHealthcare       = "healthcare"
	CategoryOtherNecessities = "other_necessities"
	CategoryChildcare        = "childcare"
	CategoryTaxes            = "taxes"
)

// Income categories.
const (
	CategorySalary             = "salary"
	CategoryMedianFamilyIncome = "median_family_income"
	CategoryOther              = "other"
)

// Savings categories.
const (
	CategoryEmergencyFund = "emergency_fund"
	CategoryRetirement    = "retirement"
)

var allowedCategories = map[TransactionKind][]string{
	TransactionKindExpense: {
		CategoryHousing,
		CategoryFood,
		CategoryTransportation,
		CategoryHealthcare,
		CategoryOtherNecessities,
		CategoryChildcare,
		CategoryTaxes,
	},
	TransactionKindIncome: {
		CategorySalary,
		CategoryMedianFamilyIncome,
		CategoryOther,
	},
	TransactionKindSavings: {
		CategoryEmergencyFund,
		CategoryRetirement,
		CategoryOther,
	},
}

// AllowedCategories returns the categories accepted for the given kind.
func AllowedCategories(kind TransactionKind) []string {
	categories := allowedCategories[kind]
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// IsCategoryAllowed reports whether category belongs to the closed set for kind.
func IsCategoryAllowed(kind TransactionKind, category string) bool {
	for _, c := range allowedCategories[kind] {
		if c == category {
			return true
		}
	}
	return false
}

// Structural problems that make a transaction unusable for aggregation.
var (
	ErrInvalidAmount    = errors.New("amount must be a positive finite number")
	ErrUnknownKind      = errors.New("unknown transaction kind")
	ErrMissingTimestamp = errors.New("missing transaction timestamp")
)

// Transaction is a dated, categorized monetary movement owned by a user.
type Transaction struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Amount     float64
	Kind       TransactionKind
	Category   string
	OccurredAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(userID uuid.UUID, amount float64, kind TransactionKind, category string, occurredAt time.Time) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:         uuid.New(),
		UserID:     userID,
		Amount:     amount,
		Kind:       kind,
		Category:   category,
		OccurredAt: occurredAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate returns the first structural problem found, or nil.
// Category membership is checked separately by ValidateCategory.
func (t Transaction) Validate() error {
	if !(t.Amount > 0) || math.IsInf(t.Amount, 1) {
		return ErrInvalidAmount
	}
	if !t.Kind.IsValid() {
		return ErrUnknownKind
	}
	if t.OccurredAt.IsZero() {
		return ErrMissingTimestamp
	}
	return nil
}

// ValidateCategory reports whether the category is allowed for the transaction kind.
func (t Transaction) ValidateCategory() bool {
	return IsCategoryAllowed(t.Kind, t.Category)
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	Kind      *TransactionKind
	StartDate *time.Time
	EndDate   *time.Time
}
