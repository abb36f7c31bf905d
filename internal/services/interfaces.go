package services

import (
	"time"

	"bankledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=service_mocks/mocks.go -package=service_mocks

// AccountServiceInterface defines the account lifecycle operations
type AccountServiceInterface interface {
	OpenAccount(ownerID uuid.UUID, accountType, currency string, initialBalance decimal.Decimal) (*models.Account, error)
	GetAccount(accountID uuid.UUID) (*models.Account, error)
	GetBalance(accountID uuid.UUID) (decimal.Decimal, error)
	GetAccountsForOwner(ownerID uuid.UUID) ([]models.Account, error)
	CloseAccount(accountID uuid.UUID) (*models.Account, error)
}

// LedgerServiceInterface defines the balance-mutating ledger operations and
// read access to the transaction log.
type LedgerServiceInterface interface {
	Deposit(accountID uuid.UUID, amount decimal.Decimal, description string) (*models.Transaction, error)
	Withdraw(accountID uuid.UUID, amount decimal.Decimal, description string) (*models.Transaction, error)
	Transfer(fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal, description string) (*models.TransferResult, error)
	GetAccountEntries(accountID uuid.UUID, offset, limit int) ([]models.Transaction, int64, error)
	CountAccountEntries(accountID uuid.UUID) (int64, error)
}

// StatementServiceInterface defines statement generation and retrieval.
// GenerateStatement returns the persisted statement together with the ledger
// entries the period covered.
type StatementServiceInterface interface {
	GenerateStatement(accountID uuid.UUID, periodStart, periodEnd time.Time) (*models.Statement, []models.Transaction, error)
	GetStatement(statementID uuid.UUID) (*models.Statement, error)
	GetStatementsForAccount(accountID uuid.UUID) ([]models.Statement, error)
}

// ArtifactWriterInterface renders a generated statement to a durable
// artifact and returns a reference to it.
type ArtifactWriterInterface interface {
	WriteStatement(account *models.Account, statement *models.Statement, entries []models.Transaction) (string, error)
}

// MetricsRecorderInterface abstracts metrics collection
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
