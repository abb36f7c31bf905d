package dto

import (
	"bankledger/internal/models"

	"github.com/shopspring/decimal"
)

// OpenAccountResponse is returned after a successful account opening
type OpenAccountResponse struct {
	Account *models.Account `json:"account"`
	Message string          `json:"message"`
}

// BalanceResponse is returned for balance queries
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
}

// EntryListResponse is a paginated list of ledger entries
type EntryListResponse struct {
	Entries []models.Transaction `json:"entries"`
	Total   int64                `json:"total"`
	Offset  int                  `json:"offset"`
	Limit   int                  `json:"limit"`
}

// StatementResponse is returned after generating a statement, together with
// the ledger entries the period covered.
type StatementResponse struct {
	Statement *models.Statement    `json:"statement"`
	Entries   []models.Transaction `json:"entries"`
}
