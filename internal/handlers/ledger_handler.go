package handlers

import (
	"net/http"
	"strconv"

	"bankledger/internal/dto"
	"bankledger/internal/errors"
	"bankledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	defaultEntryLimit = 20
	maxEntryLimit     = 100
)

// LedgerHandler handles ledger operation HTTP requests
type LedgerHandler struct {
	ledgerService services.LedgerServiceInterface
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService services.LedgerServiceInterface) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// Deposit credits an account
func (h *LedgerHandler) Deposit(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return SendError(c, errors.ErrCodeInvalidUUID, errors.WithDetails("Invalid account ID"))
	}

	var req dto.DepositRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ErrCodeValidationFailed, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ErrCodeValidationFailed, errors.WithDetails(err.Error()))
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return SendError(c, errors.ErrCodeInvalidAmount, errors.WithDetails("Invalid amount"))
	}

	entry, err := h.ledgerService.Deposit(accountID, amount, req.Description)
	if err != nil {
		return h.sendLedgerError(c, err)
	}

	return c.JSON(http.StatusCreated, entry)
}

// Withdraw debits an account
func (h *LedgerHandler) Withdraw(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return SendError(c, errors.ErrCodeInvalidUUID, errors.WithDetails("Invalid account ID"))
	}

	var req dto.WithdrawRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ErrCodeValidationFailed, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ErrCodeValidationFailed, errors.WithDetails(err.Error()))
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return SendError(c, errors.ErrCodeInvalidAmount, errors.WithDetails("Invalid amount"))
	}

	entry, err := h.ledgerService.Withdraw(accountID, amount, req.Description)
	if err != nil {
		return h.sendLedgerError(c, err)
	}

	return c.JSON(http.StatusCreated, entry)
}

// Transfer moves funds between two accounts
func (h *LedgerHandler) Transfer(c echo.Context) error {
	var req dto.TransferRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ErrCodeValidationFailed, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ErrCodeValidationFailed, errors.WithDetails(err.Error()))
	}

	fromAccountID, err := uuid.Parse(req.FromAccountID)
	if err != nil {
		return SendError(c, errors.ErrCodeInvalidUUID, errors.WithDetails("Invalid source account ID"))
	}
	toAccountID, err := uuid.Parse(req.ToAccountID)
	if err != nil {
		return SendError(c, errors.ErrCodeInvalidUUID, errors.WithDetails("Invalid destination account ID"))
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return SendError(c, errors.ErrCodeInvalidAmount, errors.WithDetails("Invalid amount"))
	}

	result, err := h.ledgerService.Transfer(fromAccountID, toAccountID, amount, req.Description)
	if err != nil {
		return h.sendLedgerError(c, err)
	}

	return c.JSON(http.StatusCreated, result)
}

// GetEntries retrieves ledger entries for an account, newest first
func (h *LedgerHandler) GetEntries(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return SendError(c, errors.ErrCodeInvalidUUID, errors.WithDetails("Invalid account ID"))
	}

	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultEntryLimit
	}
	if limit > maxEntryLimit {
		limit = maxEntryLimit
	}

	entries, total, err := h.ledgerService.GetAccountEntries(accountID, offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.EntryListResponse{
		Entries: entries,
		Total:   total,
		Offset:  offset,
		Limit:   limit,
	})
}

// sendLedgerError maps service sentinels onto error responses
func (h *LedgerHandler) sendLedgerError(c echo.Context, err error) error {
	switch err {
	case services.ErrAccountNotFound:
		return SendError(c, errors.ErrCodeAccountNotFound)
	case services.ErrAccountClosed:
		return SendError(c, errors.ErrCodeAccountClosed)
	case services.ErrInsufficientFunds:
		return SendError(c, errors.ErrCodeInsufficientFunds)
	case services.ErrInvalidAmount:
		return SendError(c, errors.ErrCodeInvalidAmount)
	case services.ErrSameAccountTransfer:
		return SendError(c, errors.ErrCodeSameAccountTransfer)
	default:
		return SendSystemError(c, err)
	}
}
