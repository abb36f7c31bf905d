package repositories

import (
	"time"

	"bankledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=repository_mocks/mocks.go -package=repository_mocks

// AccountRepositoryInterface defines storage operations for accounts
type AccountRepositoryInterface interface {
	Create(account *models.Account) error
	CreateWithEntries(account *models.Account, entries []models.Transaction) error
	GetByID(id uuid.UUID) (*models.Account, error)
	GetByAccountNumber(accountNumber string) (*models.Account, error)
	GetByOwnerID(ownerID uuid.UUID) ([]models.Account, error)
	Close(id uuid.UUID) (*models.Account, error)
	GenerateUniqueAccountNumber() (string, error)
	CheckAccountNumberExists(accountNumber string) (bool, error)
}

// TransactionRepositoryInterface defines read access to the append-only
// transaction log. Appends happen inside the ledger and account repositories'
// transactional scopes; there is deliberately no update or delete.
type TransactionRepositoryInterface interface {
	GetByID(id uuid.UUID) (*models.Transaction, error)
	GetByAccountID(accountID uuid.UUID, offset, limit int) ([]models.Transaction, int64, error)
	GetByReference(reference string) ([]models.Transaction, error)
	SumBefore(accountID uuid.UUID, before time.Time) (decimal.Decimal, error)
	SumBetween(accountID uuid.UUID, start, end time.Time) (decimal.Decimal, []models.Transaction, error)
	CountByAccountID(accountID uuid.UUID) (int64, error)
}

// LedgerRepositoryInterface executes the balance-mutating ledger operations.
// Every method runs inside a single database transaction: the log append and
// the balance delta commit together or not at all.
type LedgerRepositoryInterface interface {
	ExecuteDeposit(accountID uuid.UUID, amount decimal.Decimal, description string) (*models.Transaction, error)
	ExecuteWithdrawal(accountID uuid.UUID, amount decimal.Decimal, description string) (*models.Transaction, error)
	ExecuteTransfer(fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal, description, reference string) (debit, credit *models.Transaction, err error)
}

// StatementRepositoryInterface defines storage operations for statements
type StatementRepositoryInterface interface {
	Create(statement *models.Statement) error
	GetByID(id uuid.UUID) (*models.Statement, error)
	GetByAccountID(accountID uuid.UUID) ([]models.Statement, error)
}

// AuditLogRepositoryInterface defines storage operations for audit records
type AuditLogRepositoryInterface interface {
	Create(log *models.AuditLog) error
	GetByAccountID(accountID uuid.UUID, offset, limit int) ([]models.AuditLog, int64, error)
}
