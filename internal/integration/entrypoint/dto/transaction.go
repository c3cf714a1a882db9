package dto

import (
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
// OccurredAt is an RFC 3339 timestamp.
type CreateTransactionRequest struct {
	Amount     *float64 `json:"amount" binding:"required"`
	Kind       string   `json:"kind" binding:"required"`
	Category   string   `json:"category" binding:"required"`
	OccurredAt string   `json:"occurred_at" binding:"required"`
}

// UpdateTransactionRequest represents the request body for a partial transaction update.
type UpdateTransactionRequest struct {
	Amount     *float64 `json:"amount,omitempty"`
	Kind       *string  `json:"kind,omitempty"`
	Category   *string  `json:"category,omitempty"`
	OccurredAt *string  `json:"occurred_at,omitempty"`
}

// ListTransactionsQuery holds the optional filters of GET /transactions.
type ListTransactionsQuery struct {
	Kind      string `form:"kind"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID         string  `json:"id"`
	Amount     float64 `json:"amount"`
	Kind       string  `json:"kind"`
	Category   string  `json:"category"`
	OccurredAt string  `json:"occurred_at"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// TransactionListResponse represents the response of GET /transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
}

// ToTransactionResponse converts a domain Transaction to its response DTO.
func ToTransactionResponse(tx *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:         tx.ID.String(),
		Amount:     Money(tx.Amount),
		Kind:       string(tx.Kind),
		Category:   tx.Category,
		OccurredAt: FormatTime(tx.OccurredAt),
		CreatedAt:  FormatTime(tx.CreatedAt),
		UpdatedAt:  FormatTime(tx.UpdatedAt),
	}
}

// ToTransactionListResponse converts a list of transactions.
func ToTransactionListResponse(txs []*entity.Transaction) TransactionListResponse {
	out := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = ToTransactionResponse(tx)
	}
	return TransactionListResponse{Transactions: out, Count: len(out)}
}
