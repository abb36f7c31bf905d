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

type StatementRepositoryTestSuite struct {
	suite.Suite
	db      *database.DB
	repo    StatementRepositoryInterface
	account *models.Account
}

func (s *StatementRepositoryTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewStatementRepository(s.db.DB)
	s.account = database.CreateTestAccount(s.T(), s.db, decimal.Zero)
}

func (s *StatementRepositoryTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestStatementRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatementRepositoryTestSuite))
}

func (s *StatementRepositoryTestSuite) newStatement() *models.Statement {
	return &models.Statement{
		AccountID:      s.account.ID,
		PeriodStart:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:      time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		OpeningBalance: decimal.NewFromInt(500),
		ClosingBalance: decimal.NewFromInt(570),
	}
}

func (s *StatementRepositoryTestSuite) TestCreateAndGetByID() {
	statement := s.newStatement()
	statement.ArtifactRef = "statements/statement_test.txt"
	s.Require().NoError(s.repo.Create(statement))
	s.NotEqual(uuid.Nil, statement.ID)

	found, err := s.repo.GetByID(statement.ID)
	s.Require().NoError(err)
	s.True(found.OpeningBalance.Equal(decimal.NewFromInt(500)))
	s.True(found.ClosingBalance.Equal(decimal.NewFromInt(570)))
	s.Equal("statements/statement_test.txt", found.ArtifactRef)
}

// Regenerating the same period stores a second row rather than failing.
func (s *StatementRepositoryTestSuite) TestCreate_SamePeriodTwice() {
	s.Require().NoError(s.repo.Create(s.newStatement()))
	s.Require().NoError(s.repo.Create(s.newStatement()))

	statements, err := s.repo.GetByAccountID(s.account.ID)
	s.Require().NoError(err)
	s.Len(statements, 2)
}

func (s *StatementRepositoryTestSuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrStatementNotFound)
}

func (s *StatementRepositoryTestSuite) TestGetByAccountID_Empty() {
	statements, err := s.repo.GetByAccountID(s.account.ID)
	s.Require().NoError(err)
	s.Empty(statements)
}
