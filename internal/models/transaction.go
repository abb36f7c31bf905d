package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypeTransfer   = "transfer"
	TransactionTypePayment    = "payment"

	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
	TransactionStatusCancelled = "cancelled"
)

var (
	ErrInvalidTransactionType   = errors.New("invalid transaction type")
	ErrInvalidTransactionStatus = errors.New("invalid transaction status")
	ErrZeroAmount               = errors.New("transaction amount cannot be zero")
	ErrAmountSignMismatch       = errors.New("transaction amount sign does not match type")
)

// Transaction is one immutable ledger entry: a single account-side effect of
// a financial operation. Amounts are signed — credits positive, debits
// negative — so that an account balance always equals the sum of its
// entries. Once written, an entry is never mutated or deleted.
type Transaction struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	CounterpartyAccountID *uuid.UUID      `gorm:"type:uuid;index" json:"counterparty_account_id,omitempty"`
	TransactionType       string          `gorm:"type:varchar(20);not null" json:"transaction_type"`
	Amount                decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description           string          `gorm:"type:text" json:"description"`
	Reference             string          `gorm:"type:varchar(100);not null;index" json:"reference"`
	Status                string          `gorm:"type:varchar(20);not null;default:'completed'" json:"status"`
	CreatedAt             time.Time       `gorm:"not null;index" json:"created_at"`

	// Associations
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	if t.Status == "" {
		t.Status = TransactionStatusCompleted
	}

	if t.Reference == "" {
		t.Reference = GenerateLedgerReference()
	}

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	return t.Validate()
}

// Validate validates the ledger entry fields
func (t *Transaction) Validate() error {
	if t.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if !IsValidTransactionType(t.TransactionType) {
		return ErrInvalidTransactionType
	}

	if !IsValidTransactionStatus(t.Status) {
		return ErrInvalidTransactionStatus
	}

	if t.Amount.IsZero() {
		return ErrZeroAmount
	}

	// Sign convention: deposits credit, withdrawals and payments debit.
	// Transfer legs carry either sign and are checked pairwise by the
	// ledger operations, not here.
	switch t.TransactionType {
	case TransactionTypeDeposit:
		if t.Amount.IsNegative() {
			return ErrAmountSignMismatch
		}
	case TransactionTypeWithdrawal, TransactionTypePayment:
		if t.Amount.IsPositive() {
			return ErrAmountSignMismatch
		}
	}

	if t.Description == "" {
		return errors.New("transaction description is required")
	}

	return nil
}

// IsCredit returns true if the entry increases the account balance
func (t *Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}

// IsDebit returns true if the entry decreases the account balance
func (t *Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// IsCompleted returns true if the entry is completed
func (t *Transaction) IsCompleted() bool {
	return t.Status == TransactionStatusCompleted
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeTransfer, TransactionTypePayment:
		return true
	default:
		return false
	}
}

// IsValidTransactionStatus checks if the transaction status is valid
func IsValidTransactionStatus(status string) bool {
	switch status {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed, TransactionStatusCancelled:
		return true
	default:
		return false
	}
}

// TransferResult carries the two ledger entries produced by a completed
// transfer. Both share the same reference; Debit.Amount.Neg() equals
// Credit.Amount.
type TransferResult struct {
	Reference string      `json:"reference"`
	Debit     Transaction `json:"debit"`
	Credit    Transaction `json:"credit"`
}

// GenerateLedgerReference generates a correlation id for one logical
// operation. The two legs of a transfer share a single reference.
func GenerateLedgerReference() string {
	return "TX-" + time.Now().UTC().Format("20060102150405") + "-" + uuid.New().String()[:8]
}
