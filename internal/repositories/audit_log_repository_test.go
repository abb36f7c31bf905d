package repositories

import (
	"testing"

	"bankledger/internal/database"
	"bankledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AuditLogRepositoryTestSuite struct {
	suite.Suite
	db      *database.DB
	repo    AuditLogRepositoryInterface
	account *models.Account
}

func (s *AuditLogRepositoryTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewAuditLogRepository(s.db.DB)
	s.account = database.CreateTestAccount(s.T(), s.db, decimal.Zero)
}

func (s *AuditLogRepositoryTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestAuditLogRepositorySuite(t *testing.T) {
	suite.Run(t, new(AuditLogRepositoryTestSuite))
}

func (s *AuditLogRepositoryTestSuite) TestCreateAndGetByAccountID() {
	log := &models.AuditLog{
		AccountID:  &s.account.ID,
		Action:     models.AuditActionDeposit,
		Resource:   "transaction",
		ResourceID: uuid.New().String(),
		Metadata: models.JSONBMap{
			"amount":    "50",
			"reference": "TX-test",
		},
	}
	s.Require().NoError(s.repo.Create(log))
	s.NotEqual(uuid.Nil, log.ID)

	logs, total, err := s.repo.GetByAccountID(s.account.ID, 0, 10)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(logs, 1)
	s.Equal(models.AuditActionDeposit, logs[0].Action)
	s.Equal("50", logs[0].Metadata["amount"])
}

func (s *AuditLogRepositoryTestSuite) TestGetByAccountID_Pagination() {
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.repo.Create(&models.AuditLog{
			AccountID: &s.account.ID,
			Action:    models.AuditActionWithdrawal,
			Resource:  "transaction",
		}))
	}

	logs, total, err := s.repo.GetByAccountID(s.account.ID, 0, 3)
	s.Require().NoError(err)
	s.Equal(int64(5), total)
	s.Len(logs, 3)

	logs, total, err = s.repo.GetByAccountID(s.account.ID, 3, 3)
	s.Require().NoError(err)
	s.Equal(int64(5), total)
	s.Len(logs, 2)
}

func (s *AuditLogRepositoryTestSuite) TestGetByAccountID_Empty() {
	logs, total, err := s.repo.GetByAccountID(uuid.New(), 0, 10)
	s.Require().NoError(err)
	s.Zero(total)
	s.Empty(logs)
}
