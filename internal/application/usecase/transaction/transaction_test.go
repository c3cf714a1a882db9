package transaction

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

type memoryRepo struct {
	items map[uuid.UUID]entity.Transaction
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: map[uuid.UUID]entity.Transaction{}}
}

func (r *memoryRepo) Create(_ context.Context, tx *entity.Transaction) error {
	r.items[tx.ID] = *tx
	return nil
}

func (r *memoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	tx, ok := r.items[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	return &tx, nil
}

func (r *memoryRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	return r.FindByFilter(ctx, userID, entity.TransactionFilter{})
}

func (r *memoryRepo) FindByFilter(_ context.Context, userID uuid.UUID, f entity.TransactionFilter) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range r.items {
		tx := tx
		if tx.UserID != userID {
			continue
		}
		if f.Kind != nil && tx.Kind != *f.Kind {
			continue
		}
		if f.StartDate != nil && tx.OccurredAt.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && tx.OccurredAt.After(*f.EndDate) {
			continue
		}
		out = append(out, &tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return out, nil
}

func (r *memoryRepo) SumByKind(_ context.Context, userID uuid.UUID, kind entity.TransactionKind, start, end time.Time) (float64, error) {
	var sum float64
	for _, tx := range r.items {
		if tx.UserID == userID && tx.Kind == kind && !tx.OccurredAt.Before(start) && tx.OccurredAt.Before(end) {
			sum += tx.Amount
		}
	}
	return sum, nil
}

func (r *memoryRepo) Update(_ context.Context, tx *entity.Transaction) error {
	r.items[tx.ID] = *tx
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

type countingListener struct {
	calls []uuid.UUID
}

func (l *countingListener) TransactionsChanged(_ context.Context, userID uuid.UUID) {
	l.calls = append(l.calls, userID)
}

func txnCode(t *testing.T, err error) domainerror.TransactionErrorCode {
	t.Helper()
	var txnErr *domainerror.TransactionError
	require.True(t, errors.As(err, &txnErr), "expected TransactionError, got %v", err)
	return txnErr.Code
}

var march5 = time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC)

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("stores and notifies", func(t *testing.T) {
		repo := newMemoryRepo()
		listener := &countingListener{}
		uc := NewCreateTransactionUseCase(repo, listener)

		out, err := uc.Execute(ctx, CreateTransactionInput{
			UserID:     userID,
			Amount:     1200,
			Kind:       entity.TransactionKindExpense,
			Category:   " housing ",
			OccurredAt: march5,
		})
		require.NoError(t, err)
		assert.Equal(t, "housing", out.Transaction.Category)
		assert.Len(t, repo.items, 1)
		assert.Equal(t, []uuid.UUID{userID}, listener.calls)
	})

	tests := []struct {
		name  string
		input CreateTransactionInput
		code  domainerror.TransactionErrorCode
	}{
		{
			name:  "zero amount",
			input: CreateTransactionInput{UserID: userID, Amount: 0, Kind: entity.TransactionKindExpense, Category: "food", OccurredAt: march5},
			code:  domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:  "negative amount",
			input: CreateTransactionInput{UserID: userID, Amount: -5, Kind: entity.TransactionKindExpense, Category: "food", OccurredAt: march5},
			code:  domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:  "amount rounds to zero cents",
			input: CreateTransactionInput{UserID: userID, Amount: 0.004, Kind: entity.TransactionKindExpense, Category: "food", OccurredAt: march5},
			code:  domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:  "unknown kind",
			input: CreateTransactionInput{UserID: userID, Amount: 5, Kind: "transfer", Category: "food", OccurredAt: march5},
			code:  domainerror.ErrCodeInvalidTransactionKind,
		},
		{
			name:  "missing timestamp",
			input: CreateTransactionInput{UserID: userID, Amount: 5, Kind: entity.TransactionKindExpense, Category: "food"},
			code:  domainerror.ErrCodeInvalidTransactionDate,
		},
		{
			name:  "category of another kind",
			input: CreateTransactionInput{UserID: userID, Amount: 5, Kind: entity.TransactionKindIncome, Category: "food", OccurredAt: march5},
			code:  domainerror.ErrCodeCategoryNotAllowed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryRepo()
			listener := &countingListener{}
			_, err := NewCreateTransactionUseCase(repo, listener).Execute(ctx, tt.input)
			assert.Equal(t, tt.code, txnCode(t, err))
			assert.Empty(t, repo.items)
			assert.Empty(t, listener.calls)
		})
	}

	t.Run("nil listener", func(t *testing.T) {
		_, err := NewCreateTransactionUseCase(newMemoryRepo(), nil).Execute(ctx, CreateTransactionInput{
			UserID: userID, Amount: 10, Kind: entity.TransactionKindSavings, Category: "retirement", OccurredAt: march5,
		})
		assert.NoError(t, err)
	})
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	repo := newMemoryRepo()
	listener := &countingListener{}

	created, err := NewCreateTransactionUseCase(repo, nil).Execute(ctx, CreateTransactionInput{
		UserID: owner, Amount: 100, Kind: entity.TransactionKindExpense, Category: "food", OccurredAt: march5,
	})
	require.NoError(t, err)
	id := created.Transaction.ID

	uc := NewUpdateTransactionUseCase(repo, listener)

	amount := 80.5
	out, err := uc.Execute(ctx, UpdateTransactionInput{TransactionID: id, UserID: owner, Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, 80.5, out.Transaction.Amount)
	assert.Equal(t, "food", out.Transaction.Category)
	assert.Len(t, listener.calls, 1)

	// Switching kind without a matching category is rejected and nothing is stored.
	income := entity.TransactionKindIncome
	_, err = uc.Execute(ctx, UpdateTransactionInput{TransactionID: id, UserID: owner, Kind: &income})
	assert.Equal(t, domainerror.ErrCodeCategoryNotAllowed, txnCode(t, err))
	assert.Equal(t, entity.TransactionKindExpense, repo.items[id].Kind)

	subCent := 0.001
	_, err = uc.Execute(ctx, UpdateTransactionInput{TransactionID: id, UserID: owner, Amount: &subCent})
	assert.Equal(t, domainerror.ErrCodeInvalidTransactionAmount, txnCode(t, err))
	assert.Equal(t, 80.5, repo.items[id].Amount)

	salary := "salary"
	out, err = uc.Execute(ctx, UpdateTransactionInput{TransactionID: id, UserID: owner, Kind: &income, Category: &salary})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionKindIncome, out.Transaction.Kind)

	_, err = uc.Execute(ctx, UpdateTransactionInput{TransactionID: id, UserID: uuid.New(), Amount: &amount})
	assert.Equal(t, domainerror.ErrCodeNotAuthorizedTransaction, txnCode(t, err))

	_, err = uc.Execute(ctx, UpdateTransactionInput{TransactionID: uuid.New(), UserID: owner, Amount: &amount})
	assert.Equal(t, domainerror.ErrCodeTransactionNotFound, txnCode(t, err))
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	repo := newMemoryRepo()
	listener := &countingListener{}

	created, err := NewCreateTransactionUseCase(repo, nil).Execute(ctx, CreateTransactionInput{
		UserID: owner, Amount: 100, Kind: entity.TransactionKindExpense, Category: "food", OccurredAt: march5,
	})
	require.NoError(t, err)

	uc := NewDeleteTransactionUseCase(repo, listener)

	_, err = uc.Execute(ctx, DeleteTransactionInput{TransactionID: created.Transaction.ID, UserID: uuid.New()})
	assert.Equal(t, domainerror.ErrCodeNotAuthorizedTransaction, txnCode(t, err))
	assert.Empty(t, listener.calls)

	out, err := uc.Execute(ctx, DeleteTransactionInput{TransactionID: created.Transaction.ID, UserID: owner})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Empty(t, repo.items)
	assert.Equal(t, []uuid.UUID{owner}, listener.calls)

	_, err = uc.Execute(ctx, DeleteTransactionInput{TransactionID: created.Transaction.ID, UserID: owner})
	assert.Equal(t, domainerror.ErrCodeTransactionNotFound, txnCode(t, err))
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	repo := newMemoryRepo()
	create := NewCreateTransactionUseCase(repo, nil)

	for i, kind := range []entity.TransactionKind{entity.TransactionKindExpense, entity.TransactionKindIncome, entity.TransactionKindExpense} {
		category := "food"
		if kind == entity.TransactionKindIncome {
			category = "salary"
		}
		_, err := create.Execute(ctx, CreateTransactionInput{
			UserID: owner, Amount: 10, Kind: kind, Category: category, OccurredAt: march5.AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}
	_, err := create.Execute(ctx, CreateTransactionInput{
		UserID: uuid.New(), Amount: 10, Kind: entity.TransactionKindExpense, Category: "food", OccurredAt: march5,
	})
	require.NoError(t, err)

	uc := NewListTransactionsUseCase(repo)

	out, err := uc.Execute(ctx, ListTransactionsInput{UserID: owner})
	require.NoError(t, err)
	require.Len(t, out.Transactions, 3)
	assert.True(t, out.Transactions[0].OccurredAt.After(out.Transactions[2].OccurredAt))

	expense := entity.TransactionKindExpense
	out, err = uc.Execute(ctx, ListTransactionsInput{UserID: owner, Filter: entity.TransactionFilter{Kind: &expense}})
	require.NoError(t, err)
	assert.Len(t, out.Transactions, 2)

	bogus := entity.TransactionKind("bogus")
	_, err = uc.Execute(ctx, ListTransactionsInput{UserID: owner, Filter: entity.TransactionFilter{Kind: &bogus}})
	assert.Equal(t, domainerror.ErrCodeInvalidTransactionFilter, txnCode(t, err))

	start, end := march5.AddDate(0, 0, 1), march5
	_, err = uc.Execute(ctx, ListTransactionsInput{UserID: owner, Filter: entity.TransactionFilter{StartDate: &start, EndDate: &end}})
	assert.Equal(t, domainerror.ErrCodeInvalidTransactionFilter, txnCode(t, err))

	out, err = uc.Execute(ctx, ListTransactionsInput{UserID: uuid.New()})
	require.NoError(t, err)
	assert.NotNil(t, out.Transactions)
	assert.Empty(t, out.Transactions)
}
