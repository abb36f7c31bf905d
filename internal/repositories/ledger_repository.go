package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bankledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ledgerRepository implements LedgerRepositoryInterface
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *gorm.DB) LedgerRepositoryInterface {
	return &ledgerRepository{
		db: db,
	}
}

// ExecuteDeposit credits an active account and appends the matching ledger
// entry inside one database transaction.
func (r *ledgerRepository) ExecuteDeposit(accountID uuid.UUID, amount decimal.Decimal, description string) (*models.Transaction, error) {
	var entry *models.Transaction

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := creditBalance(tx, accountID, amount); err != nil {
			return err
		}

		entry = &models.Transaction{
			AccountID:       accountID,
			TransactionType: models.TransactionTypeDeposit,
			Amount:          amount,
			Description:     description,
			Status:          models.TransactionStatusCompleted,
		}
		if err := appendEntry(tx, entry); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// ExecuteWithdrawal debits an active account with sufficient funds and
// appends the matching negative ledger entry inside one database transaction.
func (r *ledgerRepository) ExecuteWithdrawal(accountID uuid.UUID, amount decimal.Decimal, description string) (*models.Transaction, error) {
	var entry *models.Transaction

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := debitBalance(tx, accountID, amount); err != nil {
			return err
		}

		entry = &models.Transaction{
			AccountID:       accountID,
			TransactionType: models.TransactionTypeWithdrawal,
			Amount:          amount.Neg(),
			Description:     description,
			Status:          models.TransactionStatusCompleted,
		}
		if err := appendEntry(tx, entry); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// ExecuteTransfer moves funds between two active accounts. Both balance
// updates and both ledger entries commit together or not at all, so either
// account can fail the transfer (missing, closed, insufficient funds on the
// source) and neither balance moves. The two entries share the given
// reference and point at each other through the counterparty column.
func (r *ledgerRepository) ExecuteTransfer(fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal, description, reference string) (*models.Transaction, *models.Transaction, error) {
	var debit, credit *models.Transaction

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Update balances in a stable account order so two opposing
		// transfers cannot deadlock each other.
		type balanceOp struct {
			accountID uuid.UUID
			apply     func(*gorm.DB, uuid.UUID) error
		}

		ops := []balanceOp{
			{fromAccountID, func(tx *gorm.DB, id uuid.UUID) error { return debitBalance(tx, id, amount) }},
			{toAccountID, func(tx *gorm.DB, id uuid.UUID) error { return creditBalance(tx, id, amount) }},
		}
		if strings.Compare(toAccountID.String(), fromAccountID.String()) < 0 {
			ops[0], ops[1] = ops[1], ops[0]
		}

		for _, op := range ops {
			if err := op.apply(tx, op.accountID); err != nil {
				return err
			}
		}

		debit = &models.Transaction{
			AccountID:             fromAccountID,
			CounterpartyAccountID: &toAccountID,
			TransactionType:       models.TransactionTypeTransfer,
			Amount:                amount.Neg(),
			Description:           description,
			Reference:             reference,
			Status:                models.TransactionStatusCompleted,
		}
		credit = &models.Transaction{
			AccountID:             toAccountID,
			CounterpartyAccountID: &fromAccountID,
			TransactionType:       models.TransactionTypeTransfer,
			Amount:                amount,
			Description:           description,
			Reference:             reference,
			Status:                models.TransactionStatusCompleted,
		}

		if err := appendEntry(tx, debit); err != nil {
			return err
		}
		if err := appendEntry(tx, credit); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return debit, credit, nil
}

// creditBalance adds amount to an account balance, guarded on the account
// being active. The guard lives in the WHERE clause so concurrent writers
// never race a separate read.
func creditBalance(tx *gorm.DB, accountID uuid.UUID, amount decimal.Decimal) error {
	result := tx.Model(&models.Account{}).
		Where("id = ? AND status = ?", accountID, models.AccountStatusActive).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to credit account %s: %w", accountID, result.Error)
	}
	if result.RowsAffected == 0 {
		return classifyBalanceFailure(tx, accountID, false)
	}
	return nil
}

// debitBalance subtracts amount from an account balance, guarded on the
// account being active and the balance covering the amount.
func debitBalance(tx *gorm.DB, accountID uuid.UUID, amount decimal.Decimal) error {
	result := tx.Model(&models.Account{}).
		Where("id = ? AND status = ? AND balance >= ?", accountID, models.AccountStatusActive, amount).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to debit account %s: %w", accountID, result.Error)
	}
	if result.RowsAffected == 0 {
		return classifyBalanceFailure(tx, accountID, true)
	}
	return nil
}

// classifyBalanceFailure turns a zero-row conditional update into the
// sentinel that explains it.
func classifyBalanceFailure(tx *gorm.DB, accountID uuid.UUID, debit bool) error {
	var account models.Account
	if err := tx.Where("id = ?", accountID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to inspect account %s: %w", accountID, err)
	}
	if !account.IsActive() {
		return ErrAccountClosed
	}
	if debit {
		return ErrInsufficientFunds
	}
	return fmt.Errorf("balance update affected no rows for account %s", accountID)
}
