// Package transaction contains transaction-related use cases.
package transaction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// validateTransaction checks a transaction before it reaches the store.
func validateTransaction(tx *entity.Transaction) error {
	if err := tx.Validate(); err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidAmount):
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionAmount,
				"amount must be greater than zero",
				domainerror.ErrInvalidTransactionAmount,
			)
		case errors.Is(err, entity.ErrUnknownKind):
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionKind,
				"kind must be 'income', 'expense' or 'savings'",
				domainerror.ErrInvalidTransactionKind,
			)
		default:
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionDate,
				"occurred_at is required",
				domainerror.ErrInvalidTransactionDate,
			)
		}
	}

	// Amounts are stored with two decimals.
	if !decimal.NewFromFloat(tx.Amount).Round(2).IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be at least 0.01",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if !tx.ValidateCategory() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeCategoryNotAllowed,
			fmt.Sprintf("category %q is not allowed for %s; use one of: %s",
				tx.Category, tx.Kind, strings.Join(entity.AllowedCategories(tx.Kind), ", ")),
			domainerror.ErrCategoryNotAllowed,
		)
	}

	return nil
}
