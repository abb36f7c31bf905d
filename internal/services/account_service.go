package services

import (
	"errors"
	"fmt"
	"log/slog"

	"bankledger/internal/models"
	"bankledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountClosed       = errors.New("account is closed")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidAccountType  = errors.New("invalid account type")
	ErrNonZeroBalance      = errors.New("account balance must be zero to close")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrSameAccountTransfer = errors.New("cannot transfer to same account")
)

// accountService implements AccountServiceInterface
type accountService struct {
	accountRepo repositories.AccountRepositoryInterface
	auditRepo   repositories.AuditLogRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewAccountService creates an account service
func NewAccountService(
	accountRepo repositories.AccountRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AccountServiceInterface {
	return &accountService{
		accountRepo: accountRepo,
		auditRepo:   auditRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// OpenAccount opens a new account. A positive initial balance is recorded as
// a seeding deposit entry so the stored balance reconciles against the log
// from the first moment. Currency is a denomination label, not a conversion
// unit; it defaults to USD.
func (s *accountService) OpenAccount(ownerID uuid.UUID, accountType, currency string, initialBalance decimal.Decimal) (*models.Account, error) {
	if !models.IsValidAccountType(accountType) {
		return nil, ErrInvalidAccountType
	}

	if currency == "" {
		currency = "USD"
	}

	if initialBalance.IsNegative() {
		return nil, ErrInvalidAmount
	}

	accountNumber, err := s.accountRepo.GenerateUniqueAccountNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account number: %w", err)
	}

	account := &models.Account{
		OwnerID:       ownerID,
		AccountNumber: accountNumber,
		AccountType:   accountType,
		Balance:       initialBalance,
		Currency:      currency,
		Status:        models.AccountStatusActive,
	}

	var entries []models.Transaction
	if initialBalance.GreaterThan(decimal.Zero) {
		entries = append(entries, models.Transaction{
			TransactionType: models.TransactionTypeDeposit,
			Amount:          initialBalance,
			Description:     "Initial deposit",
			Status:          models.TransactionStatusCompleted,
		})
	}

	if err := s.accountRepo.CreateWithEntries(account, entries); err != nil {
		return nil, fmt.Errorf("failed to open account: %w", err)
	}

	s.logger.Info("account opened",
		"account_id", account.ID,
		"account_number", account.AccountNumber,
		"account_type", accountType,
		"initial_balance", initialBalance.String(),
	)
	s.metrics.IncrementCounter("account.opened", nil)

	s.recordAudit(&models.AuditLog{
		AccountID:  &account.ID,
		Action:     models.AuditActionAccountOpened,
		Resource:   "account",
		ResourceID: account.ID.String(),
		Metadata: models.JSONBMap{
			"account_number":  account.AccountNumber,
			"account_type":    accountType,
			"initial_balance": initialBalance.String(),
		},
	})

	return account, nil
}

// GetAccount retrieves an account by ID
func (s *accountService) GetAccount(accountID uuid.UUID) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// GetBalance retrieves the current balance of an account
func (s *accountService) GetBalance(accountID uuid.UUID) (decimal.Decimal, error) {
	account, err := s.GetAccount(accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// GetAccountsForOwner retrieves all accounts for an owner
func (s *accountService) GetAccountsForOwner(ownerID uuid.UUID) ([]models.Account, error) {
	accounts, err := s.accountRepo.GetByOwnerID(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts for owner: %w", err)
	}
	return accounts, nil
}

// CloseAccount closes an account. Only an account with a zero balance may
// close; a closed account stays readable but rejects new ledger entries.
// The zero-balance check happens inside the repository's conditional update,
// so a deposit landing between a read and the close cannot be lost.
func (s *accountService) CloseAccount(accountID uuid.UUID) (*models.Account, error) {
	account, err := s.accountRepo.Close(accountID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrAccountNotFound):
			return nil, ErrAccountNotFound
		case errors.Is(err, repositories.ErrAccountClosed):
			return nil, ErrAccountClosed
		case errors.Is(err, repositories.ErrNonZeroBalance):
			return nil, ErrNonZeroBalance
		default:
			return nil, fmt.Errorf("failed to close account: %w", err)
		}
	}

	s.logger.Info("account closed",
		"account_id", account.ID,
		"account_number", account.AccountNumber,
	)
	s.metrics.IncrementCounter("account.closed", nil)

	s.recordAudit(&models.AuditLog{
		AccountID:  &account.ID,
		Action:     models.AuditActionAccountClosed,
		Resource:   "account",
		ResourceID: account.ID.String(),
		Metadata: models.JSONBMap{
			"account_number": account.AccountNumber,
		},
	})

	return account, nil
}

// recordAudit persists an audit record. Audit failures are logged, never
// surfaced: the operation they describe has already committed.
func (s *accountService) recordAudit(log *models.AuditLog) {
	if err := s.auditRepo.Create(log); err != nil {
		s.logger.Error("failed to create audit log", "error", err, "action", log.Action)
	}
}
