package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bankledger/internal/models"
	"bankledger/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatementPeriod = errors.New("statement period end precedes start")
	ErrStatementNotFound      = errors.New("statement not found")
)

// statementService implements StatementServiceInterface
type statementService struct {
	statementRepo   repositories.StatementRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	accountRepo     repositories.AccountRepositoryInterface
	auditRepo       repositories.AuditLogRepositoryInterface
	artifactWriter  ArtifactWriterInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewStatementService creates a statement service
func NewStatementService(
	statementRepo repositories.StatementRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	artifactWriter ArtifactWriterInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) StatementServiceInterface {
	return &statementService{
		statementRepo:   statementRepo,
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		auditRepo:       auditRepo,
		artifactWriter:  artifactWriter,
		metrics:         metrics,
		logger:          logger,
	}
}

// GenerateStatement computes and persists a statement for one account and
// period. The opening balance is the sum of all entries before the period,
// the closing balance adds the in-period entries; both derive purely from the
// log, never from the stored account balance. The artifact is best effort: a
// write failure downgrades to a statement without an artifact reference,
// never to a failed generation. Closed accounts still generate statements
// over their history.
func (s *statementService) GenerateStatement(accountID uuid.UUID, periodStart, periodEnd time.Time) (*models.Statement, []models.Transaction, error) {
	if periodEnd.Before(periodStart) {
		return nil, nil, ErrInvalidStatementPeriod
	}

	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, nil, ErrAccountNotFound
		}
		return nil, nil, fmt.Errorf("failed to get account: %w", err)
	}

	start := time.Now()

	openingBalance, err := s.transactionRepo.SumBefore(accountID, periodStart)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute opening balance: %w", err)
	}

	periodSum, entries, err := s.transactionRepo.SumBetween(accountID, periodStart, periodEnd)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute period activity: %w", err)
	}

	statement := &models.Statement{
		AccountID:      accountID,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		OpeningBalance: openingBalance,
		ClosingBalance: openingBalance.Add(periodSum),
	}

	artifactRef, artifactErr := s.artifactWriter.WriteStatement(account, statement, entries)
	if artifactErr != nil {
		s.logger.Warn("failed to write statement artifact",
			"account_id", accountID,
			"period_start", periodStart,
			"period_end", periodEnd,
			"error", artifactErr,
		)
	} else {
		statement.ArtifactRef = artifactRef
	}

	if err := s.statementRepo.Create(statement); err != nil {
		return nil, nil, fmt.Errorf("failed to persist statement: %w", err)
	}

	s.metrics.RecordProcessingTime("statement.generation", time.Since(start))
	s.metrics.IncrementCounter("statement.generated", map[string]string{
		"artifact": fmt.Sprintf("%t", artifactErr == nil),
	})

	s.logger.Info("statement generated",
		"account_id", accountID,
		"statement_id", statement.ID,
		"opening_balance", statement.OpeningBalance.String(),
		"closing_balance", statement.ClosingBalance.String(),
		"entries", len(entries),
	)

	s.recordAudit(&models.AuditLog{
		AccountID:  &accountID,
		Action:     models.AuditActionStatementCreated,
		Resource:   "statement",
		ResourceID: statement.ID.String(),
		Metadata: models.JSONBMap{
			"period_start":    periodStart.Format(time.RFC3339),
			"period_end":      periodEnd.Format(time.RFC3339),
			"opening_balance": statement.OpeningBalance.String(),
			"closing_balance": statement.ClosingBalance.String(),
		},
	})

	return statement, entries, nil
}

// GetStatement retrieves a statement by ID
func (s *statementService) GetStatement(statementID uuid.UUID) (*models.Statement, error) {
	statement, err := s.statementRepo.GetByID(statementID)
	if err != nil {
		if errors.Is(err, repositories.ErrStatementNotFound) {
			return nil, ErrStatementNotFound
		}
		return nil, fmt.Errorf("failed to get statement: %w", err)
	}
	return statement, nil
}

// GetStatementsForAccount retrieves all statements for an account, newest first
func (s *statementService) GetStatementsForAccount(accountID uuid.UUID) ([]models.Statement, error) {
	if _, err := s.accountRepo.GetByID(accountID); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	statements, err := s.statementRepo.GetByAccountID(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get statements: %w", err)
	}
	return statements, nil
}

func (s *statementService) recordAudit(log *models.AuditLog) {
	if err := s.auditRepo.Create(log); err != nil {
		s.logger.Error("failed to create audit log", "error", err, "action", log.Action)
	}
}
