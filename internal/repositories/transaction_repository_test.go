package repositories

import (
	"testing"
	"time"

	"bankledger/internal/database"
	"bankledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionRepositoryTestSuite struct {
	suite.Suite
	db      *database.DB
	repo    TransactionRepositoryInterface
	account *models.Account
}

func (s *TransactionRepositoryTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)
	s.account = database.CreateTestAccount(s.T(), s.db, decimal.Zero)
}

func (s *TransactionRepositoryTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositoryTestSuite))
}

// seedEntry writes one entry with an explicit timestamp
func (s *TransactionRepositoryTestSuite) seedEntry(amount int64, createdAt time.Time) *models.Transaction {
	entryType := models.TransactionTypeDeposit
	if amount < 0 {
		entryType = models.TransactionTypeWithdrawal
	}

	entry := &models.Transaction{
		AccountID:       s.account.ID,
		TransactionType: entryType,
		Amount:          decimal.NewFromInt(amount),
		Description:     "Test entry",
		Status:          models.TransactionStatusCompleted,
		CreatedAt:       createdAt,
	}
	s.Require().NoError(appendEntry(s.db.DB, entry))
	return entry
}

func (s *TransactionRepositoryTestSuite) TestAppendAndGetByID() {
	entry := s.seedEntry(100, time.Now().UTC())

	found, err := s.repo.GetByID(entry.ID)
	s.Require().NoError(err)
	s.True(found.Amount.Equal(decimal.NewFromInt(100)))
	s.NotEmpty(found.Reference)
}

func (s *TransactionRepositoryTestSuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositoryTestSuite) TestGetByAccountID_NewestFirstWithCount() {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s.seedEntry(10, base.Add(time.Duration(i)*time.Hour))
	}

	entries, total, err := s.repo.GetByAccountID(s.account.ID, 0, 3)
	s.Require().NoError(err)
	s.Equal(int64(5), total)
	s.Require().Len(entries, 3)
	s.True(entries[0].CreatedAt.After(entries[1].CreatedAt))
	s.True(entries[1].CreatedAt.After(entries[2].CreatedAt))

	entries, total, err = s.repo.GetByAccountID(s.account.ID, 3, 3)
	s.Require().NoError(err)
	s.Equal(int64(5), total)
	s.Len(entries, 2)
}

func (s *TransactionRepositoryTestSuite) TestGetByReference() {
	reference := models.GenerateLedgerReference()

	debit := &models.Transaction{
		AccountID:       s.account.ID,
		TransactionType: models.TransactionTypeTransfer,
		Amount:          decimal.NewFromInt(-25),
		Description:     "Transfer out",
		Reference:       reference,
	}
	credit := &models.Transaction{
		AccountID:       s.account.ID,
		TransactionType: models.TransactionTypeTransfer,
		Amount:          decimal.NewFromInt(25),
		Description:     "Transfer in",
		Reference:       reference,
	}
	s.Require().NoError(appendEntry(s.db.DB, debit))
	s.Require().NoError(appendEntry(s.db.DB, credit))

	entries, err := s.repo.GetByReference(reference)
	s.Require().NoError(err)
	s.Len(entries, 2)

	_, err = s.repo.GetByReference("TX-missing")
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositoryTestSuite) TestSumBefore() {
	base := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	s.seedEntry(100, base.AddDate(0, 0, -10))
	s.seedEntry(-30, base.AddDate(0, 0, -5))
	s.seedEntry(999, base.AddDate(0, 0, 1)) // after the cutoff

	total, err := s.repo.SumBefore(s.account.ID, base)
	s.Require().NoError(err)
	s.True(total.Equal(decimal.NewFromInt(70)), "got %s", total)
}

func (s *TransactionRepositoryTestSuite) TestSumBefore_NoEntries() {
	total, err := s.repo.SumBefore(s.account.ID, time.Now().UTC())
	s.Require().NoError(err)
	s.True(total.IsZero())
}

func (s *TransactionRepositoryTestSuite) TestSumBetween_InclusiveBoundsAscending() {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)

	s.seedEntry(500, start.AddDate(0, 0, -1)) // before the period
	first := s.seedEntry(100, start)          // on the start bound
	second := s.seedEntry(-40, start.AddDate(0, 0, 10))
	third := s.seedEntry(15, end) // on the end bound
	s.seedEntry(999, end.Add(time.Second))

	total, entries, err := s.repo.SumBetween(s.account.ID, start, end)
	s.Require().NoError(err)
	s.True(total.Equal(decimal.NewFromInt(75)), "got %s", total)
	s.Require().Len(entries, 3)
	s.Equal(first.ID, entries[0].ID)
	s.Equal(second.ID, entries[1].ID)
	s.Equal(third.ID, entries[2].ID)
}

func (s *TransactionRepositoryTestSuite) TestCountByAccountID() {
	now := time.Now().UTC()
	s.seedEntry(10, now)
	s.seedEntry(-5, now)

	count, err := s.repo.CountByAccountID(s.account.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), count)

	count, err = s.repo.CountByAccountID(uuid.New())
	s.Require().NoError(err)
	s.Zero(count)
}
