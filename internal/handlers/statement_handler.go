package handlers

import (
	"net/http"
	"time"

	"bankledger/internal/dto"
	"bankledger/internal/errors"
	"bankledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// StatementHandler handles statement HTTP requests
type StatementHandler struct {
	statementService services.StatementServiceInterface
}

// NewStatementHandler creates a new statement handler
func NewStatementHandler(statementService services.StatementServiceInterface) *StatementHandler {
	return &StatementHandler{
		statementService: statementService,
	}
}

// GenerateStatement generates a statement for an account and period. Dates
// accept RFC 3339 timestamps or plain dates; a plain end date covers the
// whole day.
func (h *StatementHandler) GenerateStatement(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return SendError(c, errors.ErrCodeInvalidUUID, errors.WithDetails("Invalid account ID"))
	}

	var req dto.GenerateStatementRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ErrCodeValidationFailed, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ErrCodeValidationFailed, errors.WithDetails(err.Error()))
	}

	periodStart, err := parsePeriodBound(req.PeriodStart, false)
	if err != nil {
		return SendError(c, errors.ErrCodeInvalidPeriod, errors.WithDetails("Invalid period start"))
	}
	periodEnd, err := parsePeriodBound(req.PeriodEnd, true)
	if err != nil {
		return SendError(c, errors.ErrCodeInvalidPeriod, errors.WithDetails("Invalid period end"))
	}

	statement, entries, err := h.statementService.GenerateStatement(accountID, periodStart, periodEnd)
	if err != nil {
		switch err {
		case services.ErrAccountNotFound:
			return SendError(c, errors.ErrCodeAccountNotFound)
		case services.ErrInvalidStatementPeriod:
			return SendError(c, errors.ErrCodeStatementPeriod)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, dto.StatementResponse{
		Statement: statement,
		Entries:   entries,
	})
}

// GetStatements retrieves all statements for an account, newest first
func (h *StatementHandler) GetStatements(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return SendError(c, errors.ErrCodeInvalidUUID, errors.WithDetails("Invalid account ID"))
	}

	statements, err := h.statementService.GetStatementsForAccount(accountID)
	if err != nil {
		if err == services.ErrAccountNotFound {
			return SendError(c, errors.ErrCodeAccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, statements)
}

// GetStatement retrieves a single statement by ID
func (h *StatementHandler) GetStatement(c echo.Context) error {
	statementID, err := uuid.Parse(c.Param("statementId"))
	if err != nil {
		return SendError(c, errors.ErrCodeInvalidUUID, errors.WithDetails("Invalid statement ID"))
	}

	statement, err := h.statementService.GetStatement(statementID)
	if err != nil {
		if err == services.ErrStatementNotFound {
			return SendError(c, errors.ErrCodeStatementNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, statement)
}

// parsePeriodBound parses an RFC 3339 timestamp or a 2006-01-02 date. Plain
// end dates are pushed to the last instant of the day so the bound stays
// inclusive.
func parsePeriodBound(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t.UTC(), nil
}
