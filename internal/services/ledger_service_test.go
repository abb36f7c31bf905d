package services

import (
	"io"
	"log/slog"
	"testing"

	"bankledger/internal/models"
	"bankledger/internal/repositories"
	"bankledger/internal/repositories/repository_mocks"
	"bankledger/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	ledgerRepo      *repository_mocks.MockLedgerRepositoryInterface
	transactionRepo *repository_mocks.MockTransactionRepositoryInterface
	auditRepo       *repository_mocks.MockAuditLogRepositoryInterface
	metrics         *service_mocks.MockMetricsRecorderInterface
	service         LedgerServiceInterface
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ledgerRepo = repository_mocks.NewMockLedgerRepositoryInterface(s.ctrl)
	s.transactionRepo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)
	s.auditRepo = repository_mocks.NewMockAuditLogRepositoryInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)

	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil).AnyTimes()
	s.metrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()
	s.metrics.EXPECT().RecordProcessingTime(gomock.Any(), gomock.Any()).AnyTimes()
	s.metrics.EXPECT().RecordGauge(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewLedgerService(s.ledgerRepo, s.transactionRepo, s.auditRepo, s.metrics, logger)
}

func (s *LedgerServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) TestDeposit_Success() {
	accountID := uuid.New()
	amount := decimal.NewFromInt(50)

	s.ledgerRepo.EXPECT().
		ExecuteDeposit(accountID, amount, "Payroll").
		Return(&models.Transaction{
			ID:              uuid.New(),
			AccountID:       accountID,
			TransactionType: models.TransactionTypeDeposit,
			Amount:          amount,
			Reference:       "TX-test",
		}, nil)

	entry, err := s.service.Deposit(accountID, amount, "Payroll")
	s.Require().NoError(err)
	s.True(entry.Amount.Equal(amount))
}

// An empty description falls back to a default before reaching the repository.
func (s *LedgerServiceTestSuite) TestDeposit_DefaultDescription() {
	accountID := uuid.New()
	amount := decimal.NewFromInt(50)

	s.ledgerRepo.EXPECT().
		ExecuteDeposit(accountID, amount, "Deposit").
		Return(&models.Transaction{ID: uuid.New(), Reference: "TX-test"}, nil)

	_, err := s.service.Deposit(accountID, amount, "")
	s.NoError(err)
}

func (s *LedgerServiceTestSuite) TestDeposit_RejectsNonPositiveAmount() {
	_, err := s.service.Deposit(uuid.New(), decimal.Zero, "Payroll")
	s.ErrorIs(err, ErrInvalidAmount)

	_, err = s.service.Deposit(uuid.New(), decimal.NewFromInt(-10), "Payroll")
	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *LedgerServiceTestSuite) TestDeposit_MapsRepositoryErrors() {
	accountID := uuid.New()
	amount := decimal.NewFromInt(50)

	s.ledgerRepo.EXPECT().
		ExecuteDeposit(accountID, amount, "Deposit").
		Return(nil, repositories.ErrAccountClosed)

	_, err := s.service.Deposit(accountID, amount, "")
	s.ErrorIs(err, ErrAccountClosed)
}

func (s *LedgerServiceTestSuite) TestWithdraw_Success() {
	accountID := uuid.New()
	amount := decimal.NewFromInt(40)

	s.ledgerRepo.EXPECT().
		ExecuteWithdrawal(accountID, amount, "Groceries").
		Return(&models.Transaction{
			ID:              uuid.New(),
			AccountID:       accountID,
			TransactionType: models.TransactionTypeWithdrawal,
			Amount:          amount.Neg(),
			Reference:       "TX-test",
		}, nil)

	entry, err := s.service.Withdraw(accountID, amount, "Groceries")
	s.Require().NoError(err)
	s.True(entry.Amount.IsNegative())
}

func (s *LedgerServiceTestSuite) TestWithdraw_InsufficientFunds() {
	accountID := uuid.New()
	amount := decimal.NewFromInt(500)

	s.ledgerRepo.EXPECT().
		ExecuteWithdrawal(accountID, amount, "Withdrawal").
		Return(nil, repositories.ErrInsufficientFunds)

	_, err := s.service.Withdraw(accountID, amount, "")
	s.ErrorIs(err, ErrInsufficientFunds)
}

func (s *LedgerServiceTestSuite) TestWithdraw_RejectsNonPositiveAmount() {
	_, err := s.service.Withdraw(uuid.New(), decimal.Zero, "")
	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *LedgerServiceTestSuite) TestTransfer_Success() {
	fromID := uuid.New()
	toID := uuid.New()
	amount := decimal.NewFromInt(75)

	s.ledgerRepo.EXPECT().
		ExecuteTransfer(fromID, toID, amount, "Rent", gomock.Any()).
		DoAndReturn(func(from, to uuid.UUID, amt decimal.Decimal, description, reference string) (*models.Transaction, *models.Transaction, error) {
			debit := &models.Transaction{AccountID: from, Amount: amt.Neg(), Reference: reference}
			credit := &models.Transaction{AccountID: to, Amount: amt, Reference: reference}
			return debit, credit, nil
		})

	result, err := s.service.Transfer(fromID, toID, amount, "Rent")
	s.Require().NoError(err)
	s.NotEmpty(result.Reference)
	s.Equal(result.Reference, result.Debit.Reference)
	s.Equal(result.Reference, result.Credit.Reference)
	s.True(result.Debit.Amount.Add(result.Credit.Amount).IsZero())
}

func (s *LedgerServiceTestSuite) TestTransfer_SameAccount() {
	accountID := uuid.New()
	_, err := s.service.Transfer(accountID, accountID, decimal.NewFromInt(10), "Loop")
	s.ErrorIs(err, ErrSameAccountTransfer)
}

func (s *LedgerServiceTestSuite) TestTransfer_RejectsNonPositiveAmount() {
	_, err := s.service.Transfer(uuid.New(), uuid.New(), decimal.Zero, "Rent")
	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *LedgerServiceTestSuite) TestTransfer_InsufficientFunds() {
	fromID := uuid.New()
	toID := uuid.New()

	s.ledgerRepo.EXPECT().
		ExecuteTransfer(fromID, toID, gomock.Any(), "Transfer", gomock.Any()).
		Return(nil, nil, repositories.ErrInsufficientFunds)

	_, err := s.service.Transfer(fromID, toID, decimal.NewFromInt(75), "")
	s.ErrorIs(err, ErrInsufficientFunds)
}

func (s *LedgerServiceTestSuite) TestTransfer_MissingDestination() {
	fromID := uuid.New()
	toID := uuid.New()

	s.ledgerRepo.EXPECT().
		ExecuteTransfer(fromID, toID, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil, repositories.ErrAccountNotFound)

	_, err := s.service.Transfer(fromID, toID, decimal.NewFromInt(75), "Rent")
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *LedgerServiceTestSuite) TestGetAccountEntries() {
	accountID := uuid.New()

	s.transactionRepo.EXPECT().
		GetByAccountID(accountID, 0, 20).
		Return([]models.Transaction{{}, {}}, int64(7), nil)

	entries, total, err := s.service.GetAccountEntries(accountID, 0, 20)
	s.Require().NoError(err)
	s.Len(entries, 2)
	s.Equal(int64(7), total)
}

func (s *LedgerServiceTestSuite) TestCountAccountEntries() {
	accountID := uuid.New()

	s.transactionRepo.EXPECT().CountByAccountID(accountID).Return(int64(3), nil)

	count, err := s.service.CountAccountEntries(accountID)
	s.Require().NoError(err)
	s.Equal(int64(3), count)
}
