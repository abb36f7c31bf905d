package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bankledger/internal/models"
	"bankledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService implements LedgerServiceInterface
type ledgerService struct {
	ledgerRepo      repositories.LedgerRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	auditRepo       repositories.AuditLogRepositoryInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewLedgerService creates a ledger service
func NewLedgerService(
	ledgerRepo repositories.LedgerRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) LedgerServiceInterface {
	return &ledgerService{
		ledgerRepo:      ledgerRepo,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// Deposit credits an account. Amount must be strictly positive; the entry is
// recorded with a positive signed amount.
func (s *ledgerService) Deposit(accountID uuid.UUID, amount decimal.Decimal, description string) (*models.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if description == "" {
		description = "Deposit"
	}

	start := time.Now()
	entry, err := s.ledgerRepo.ExecuteDeposit(accountID, amount, description)
	s.observeOperation("deposit", amount, start, err)
	if err != nil {
		return nil, s.mapLedgerError(err)
	}

	s.logger.Info("deposit completed",
		"account_id", accountID,
		"amount", amount.String(),
		"reference", entry.Reference,
	)

	s.recordAudit(&models.AuditLog{
		AccountID:  &accountID,
		Action:     models.AuditActionDeposit,
		Resource:   "transaction",
		ResourceID: entry.ID.String(),
		Metadata: models.JSONBMap{
			"amount":    amount.String(),
			"reference": entry.Reference,
		},
	})

	return entry, nil
}

// Withdraw debits an account. Amount must be strictly positive; the entry is
// recorded with a negative signed amount. Fails without any effect when the
// balance cannot cover the amount.
func (s *ledgerService) Withdraw(accountID uuid.UUID, amount decimal.Decimal, description string) (*models.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if description == "" {
		description = "Withdrawal"
	}

	start := time.Now()
	entry, err := s.ledgerRepo.ExecuteWithdrawal(accountID, amount, description)
	s.observeOperation("withdrawal", amount, start, err)
	if err != nil {
		return nil, s.mapLedgerError(err)
	}

	s.logger.Info("withdrawal completed",
		"account_id", accountID,
		"amount", amount.String(),
		"reference", entry.Reference,
	)

	s.recordAudit(&models.AuditLog{
		AccountID:  &accountID,
		Action:     models.AuditActionWithdrawal,
		Resource:   "transaction",
		ResourceID: entry.ID.String(),
		Metadata: models.JSONBMap{
			"amount":    amount.String(),
			"reference": entry.Reference,
		},
	})

	return entry, nil
}

// Transfer atomically moves amount from one account to another. On success
// the log gains exactly two entries sharing one reference; on any failure
// neither balance moves and nothing is appended.
func (s *ledgerService) Transfer(fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal, description string) (*models.TransferResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if fromAccountID == toAccountID {
		return nil, ErrSameAccountTransfer
	}
	if description == "" {
		description = "Transfer"
	}

	reference := models.GenerateLedgerReference()

	start := time.Now()
	debit, credit, err := s.ledgerRepo.ExecuteTransfer(fromAccountID, toAccountID, amount, description, reference)
	s.observeOperation("transfer", amount, start, err)
	if err != nil {
		s.logger.Warn("transfer failed",
			"from_account_id", fromAccountID,
			"to_account_id", toAccountID,
			"amount", amount.String(),
			"error", err,
		)

		s.recordAudit(&models.AuditLog{
			AccountID:  &fromAccountID,
			Action:     models.AuditActionTransferFailed,
			Resource:   "transaction",
			ResourceID: reference,
			Metadata: models.JSONBMap{
				"to_account_id": toAccountID.String(),
				"amount":        amount.String(),
				"error":         err.Error(),
			},
		})

		return nil, s.mapLedgerError(err)
	}

	s.logger.Info("transfer completed",
		"from_account_id", fromAccountID,
		"to_account_id", toAccountID,
		"amount", amount.String(),
		"reference", reference,
	)

	s.recordAudit(&models.AuditLog{
		AccountID:  &fromAccountID,
		Action:     models.AuditActionTransferCompleted,
		Resource:   "transaction",
		ResourceID: reference,
		Metadata: models.JSONBMap{
			"to_account_id": toAccountID.String(),
			"amount":        amount.String(),
			"reference":     reference,
		},
	})

	return &models.TransferResult{
		Reference: reference,
		Debit:     *debit,
		Credit:    *credit,
	}, nil
}

// GetAccountEntries retrieves ledger entries for an account, newest first
func (s *ledgerService) GetAccountEntries(accountID uuid.UUID, offset, limit int) ([]models.Transaction, int64, error) {
	entries, total, err := s.transactionRepo.GetByAccountID(accountID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get account entries: %w", err)
	}
	return entries, total, nil
}

// CountAccountEntries counts ledger entries for an account
func (s *ledgerService) CountAccountEntries(accountID uuid.UUID) (int64, error) {
	count, err := s.transactionRepo.CountByAccountID(accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to count account entries: %w", err)
	}
	return count, nil
}

// mapLedgerError maps repository sentinels onto service sentinels
func (s *ledgerService) mapLedgerError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrAccountNotFound):
		return ErrAccountNotFound
	case errors.Is(err, repositories.ErrAccountClosed):
		return ErrAccountClosed
	case errors.Is(err, repositories.ErrInsufficientFunds):
		return ErrInsufficientFunds
	default:
		return fmt.Errorf("ledger operation failed: %w", err)
	}
}

func (s *ledgerService) observeOperation(operation string, amount decimal.Decimal, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	s.metrics.IncrementCounter("ledger.operation", map[string]string{
		"operation": operation,
		"status":    status,
	})
	s.metrics.RecordProcessingTime("ledger.operation", time.Since(start))
	if err == nil {
		amountFloat, _ := amount.Float64()
		s.metrics.RecordGauge("ledger_amount", amountFloat, nil)
	}
}

func (s *ledgerService) recordAudit(log *models.AuditLog) {
	if err := s.auditRepo.Create(log); err != nil {
		s.logger.Error("failed to create audit log", "error", err, "action", log.Action)
	}
}
