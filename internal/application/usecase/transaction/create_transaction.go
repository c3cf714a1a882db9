package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID     uuid.UUID
	Amount     float64
	Kind       entity.TransactionKind
	Category   string
	OccurredAt time.Time
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	listener        adapter.TransactionChangeListener
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
// listener may be nil.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	listener adapter.TransactionChangeListener,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		listener:        listener,
	}
}

// Execute validates and stores the transaction, then notifies the listener.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	transaction := entity.NewTransaction(
		input.UserID,
		input.Amount,
		input.Kind,
		strings.TrimSpace(input.Category),
		input.OccurredAt,
	)

	if err := validateTransaction(transaction); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	slog.InfoContext(ctx, "transaction created",
		"user_id", input.UserID,
		"transaction_id", transaction.ID,
		"kind", transaction.Kind,
	)
	notify(ctx, uc.listener, input.UserID)

	return &CreateTransactionOutput{Transaction: transaction}, nil
}

func notify(ctx context.Context, listener adapter.TransactionChangeListener, userID uuid.UUID) {
	if listener == nil {
		return
	}
	listener.TransactionsChanged(ctx, userID)
}
