package handlers

import (
	"net/http"

	"bankledger/internal/dto"
	"bankledger/internal/errors"
	"bankledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService        services.AccountServiceInterface
	defaultOpeningBalance decimal.Decimal
}

// NewAccountHandler creates a new account handler. Accounts opened without an
// explicit initial balance are seeded with defaultOpeningBalance.
func NewAccountHandler(accountService services.AccountServiceInterface, defaultOpeningBalance decimal.Decimal) *AccountHandler {
	return &AccountHandler{
		accountService:        accountService,
		defaultOpeningBalance: defaultOpeningBalance,
	}
}

// OpenAccount opens a new account
func (h *AccountHandler) OpenAccount(c echo.Context) error {
	var req dto.OpenAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ErrCodeValidationFailed, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ErrCodeValidationFailed, errors.WithDetails(err.Error()))
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return SendError(c, errors.ErrCodeInvalidUUID, errors.WithDetails("Invalid owner ID"))
	}

	initialBalance := h.defaultOpeningBalance
	if req.InitialBalance != "" {
		initialBalance, err = decimal.NewFromString(req.InitialBalance)
		if err != nil {
			return SendError(c, errors.ErrCodeInvalidAmount, errors.WithDetails("Invalid initial balance"))
		}
	}

	account, err := h.accountService.OpenAccount(ownerID, req.AccountType, req.Currency, initialBalance)
	if err != nil {
		switch err {
		case services.ErrInvalidAccountType:
			return SendError(c, errors.ErrCodeInvalidAccountType)
		case services.ErrInvalidAmount:
			return SendError(c, errors.ErrCodeInvalidAmount)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, dto.OpenAccountResponse{
		Account: account,
		Message: "Account opened successfully",
	})
}

// GetAccount retrieves a specific account by ID
func (h *AccountHandler) GetAccount(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return SendError(c, errors.ErrCodeInvalidUUID, errors.WithDetails("Invalid account ID"))
	}

	account, err := h.accountService.GetAccount(accountID)
	if err != nil {
		if err == services.ErrAccountNotFound {
			return SendError(c, errors.ErrCodeAccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, account)
}

// GetBalance retrieves the current balance of an account
func (h *AccountHandler) GetBalance(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return SendError(c, errors.ErrCodeInvalidUUID, errors.WithDetails("Invalid account ID"))
	}

	account, err := h.accountService.GetAccount(accountID)
	if err != nil {
		if err == services.ErrAccountNotFound {
			return SendError(c, errors.ErrCodeAccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountID: account.ID.String(),
		Balance:   account.Balance,
		Currency:  account.Currency,
	})
}

// GetOwnerAccounts retrieves all accounts for an owner
func (h *AccountHandler) GetOwnerAccounts(c echo.Context) error {
	ownerID, err := uuid.Parse(c.Param("ownerId"))
	if err != nil {
		return SendError(c, errors.ErrCodeInvalidUUID, errors.WithDetails("Invalid owner ID"))
	}

	accounts, err := h.accountService.GetAccountsForOwner(ownerID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, accounts)
}

// CloseAccount closes an account. The account must have a zero balance.
func (h *AccountHandler) CloseAccount(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return SendError(c, errors.ErrCodeInvalidUUID, errors.WithDetails("Invalid account ID"))
	}

	account, err := h.accountService.CloseAccount(accountID)
	if err != nil {
		switch err {
		case services.ErrAccountNotFound:
			return SendError(c, errors.ErrCodeAccountNotFound)
		case services.ErrNonZeroBalance:
			return SendError(c, errors.ErrCodeNonZeroBalance)
		case services.ErrAccountClosed:
			return SendError(c, errors.ErrCodeAccountClosed)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    account,
		Message: "Account closed successfully",
	})
}
