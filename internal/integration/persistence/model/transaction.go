package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table.
type TransactionModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_user_occurred"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Kind       string          `gorm:"type:varchar(10);not null;index"`
	Category   string          `gorm:"type:varchar(50);not null"`
	OccurredAt time.Time       `gorm:"not null;index:idx_transactions_user_occurred"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
	DeletedAt  gorm.DeletedAt  `gorm:"index"`

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:         m.ID,
		UserID:     m.UserID,
		Amount:     m.Amount.InexactFloat64(),
		Kind:       entity.TransactionKind(m.Kind),
		Category:   m.Category,
		OccurredAt: m.OccurredAt.UTC(),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:         transaction.ID,
		UserID:     transaction.UserID,
		Amount:     decimal.NewFromFloat(transaction.Amount).Round(2),
		Kind:       string(transaction.Kind),
		Category:   transaction.Category,
		OccurredAt: transaction.OccurredAt.UTC(),
		CreatedAt:  transaction.CreatedAt,
		UpdatedAt:  transaction.UpdatedAt,
	}
}
