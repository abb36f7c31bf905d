package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bankledger/internal/dto"
	"bankledger/internal/errors"
	"bankledger/internal/models"
	"bankledger/internal/services"
	"bankledger/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StatementHandlerTestSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	statementService *service_mocks.MockStatementServiceInterface
	handler          *StatementHandler
	echo             *echo.Echo
}

func (s *StatementHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.statementService = service_mocks.NewMockStatementServiceInterface(s.ctrl)
	s.handler = NewStatementHandler(s.statementService)
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
}

func (s *StatementHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestStatementHandlerSuite(t *testing.T) {
	suite.Run(t, new(StatementHandlerTestSuite))
}

func (s *StatementHandlerTestSuite) postContext(accountID, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/accounts/"+accountID+"/statements", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetParamNames("accountId")
	c.SetParamValues(accountID)
	return c, rec
}

func (s *StatementHandlerTestSuite) errorCode(rec *httptest.ResponseRecorder) errors.ErrorCode {
	var response errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	return errors.ErrorCode(response.Error.Code)
}

func (s *StatementHandlerTestSuite) TestGenerateStatement_PlainDates() {
	accountID := uuid.New()

	s.statementService.EXPECT().
		GenerateStatement(accountID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(id uuid.UUID, start, end time.Time) (*models.Statement, []models.Transaction, error) {
			s.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), start)
			// A plain end date covers the whole day.
			s.Equal(time.Date(2025, 6, 30, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), end)
			return &models.Statement{
				ID:             uuid.New(),
				AccountID:      id,
				PeriodStart:    start,
				PeriodEnd:      end,
				OpeningBalance: decimal.NewFromInt(500),
				ClosingBalance: decimal.NewFromInt(570),
			}, []models.Transaction{{Amount: decimal.NewFromInt(70)}}, nil
		})

	c, rec := s.postContext(accountID.String(),
		`{"period_start": "2025-06-01", "period_end": "2025-06-30"}`)

	s.Require().NoError(s.handler.GenerateStatement(c))
	s.Equal(http.StatusCreated, rec.Code)

	var response dto.StatementResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.True(response.Statement.ClosingBalance.Equal(decimal.NewFromInt(570)))
	s.Len(response.Entries, 1)
}

func (s *StatementHandlerTestSuite) TestGenerateStatement_RFC3339() {
	accountID := uuid.New()
	start := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	end := time.Date(2025, 6, 15, 17, 0, 0, 0, time.UTC)

	s.statementService.EXPECT().
		GenerateStatement(accountID, start, end).
		Return(&models.Statement{ID: uuid.New(), AccountID: accountID}, nil, nil)

	c, rec := s.postContext(accountID.String(),
		`{"period_start": "2025-06-01T08:30:00Z", "period_end": "2025-06-15T17:00:00Z"}`)

	s.Require().NoError(s.handler.GenerateStatement(c))
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *StatementHandlerTestSuite) TestGenerateStatement_MalformedDate() {
	c, rec := s.postContext(uuid.New().String(),
		`{"period_start": "June 1st", "period_end": "2025-06-30"}`)

	s.Require().NoError(s.handler.GenerateStatement(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(errors.ErrCodeInvalidPeriod, s.errorCode(rec))
}

func (s *StatementHandlerTestSuite) TestGenerateStatement_EndBeforeStart() {
	accountID := uuid.New()

	s.statementService.EXPECT().
		GenerateStatement(accountID, gomock.Any(), gomock.Any()).
		Return(nil, nil, services.ErrInvalidStatementPeriod)

	c, rec := s.postContext(accountID.String(),
		`{"period_start": "2025-06-30", "period_end": "2025-06-01"}`)

	s.Require().NoError(s.handler.GenerateStatement(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(errors.ErrCodeStatementPeriod, s.errorCode(rec))
}

func (s *StatementHandlerTestSuite) TestGenerateStatement_AccountNotFound() {
	accountID := uuid.New()

	s.statementService.EXPECT().
		GenerateStatement(accountID, gomock.Any(), gomock.Any()).
		Return(nil, nil, services.ErrAccountNotFound)

	c, rec := s.postContext(accountID.String(),
		`{"period_start": "2025-06-01", "period_end": "2025-06-30"}`)

	s.Require().NoError(s.handler.GenerateStatement(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(errors.ErrCodeAccountNotFound, s.errorCode(rec))
}

func (s *StatementHandlerTestSuite) TestGetStatement_NotFound() {
	statementID := uuid.New()

	s.statementService.EXPECT().GetStatement(statementID).Return(nil, services.ErrStatementNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/statements/"+statementID.String(), nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetParamNames("statementId")
	c.SetParamValues(statementID.String())

	s.Require().NoError(s.handler.GetStatement(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(errors.ErrCodeStatementNotFound, s.errorCode(rec))
}

func (s *StatementHandlerTestSuite) TestGetStatements() {
	accountID := uuid.New()

	s.statementService.EXPECT().
		GetStatementsForAccount(accountID).
		Return([]models.Statement{{}, {}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/"+accountID.String()+"/statements", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetParamNames("accountId")
	c.SetParamValues(accountID.String())

	s.Require().NoError(s.handler.GetStatements(c))
	s.Equal(http.StatusOK, rec.Code)
}

func TestParsePeriodBound(t *testing.T) {
	start, err := parsePeriodBound("2025-06-01", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), start)

	end, err := parsePeriodBound("2025-06-01", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), end)

	exact, err := parsePeriodBound("2025-06-01T08:30:00Z", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC), exact)

	_, err = parsePeriodBound("June 1st", false)
	assert.Error(t, err)
}
