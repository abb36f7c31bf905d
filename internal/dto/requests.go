package dto

// OpenAccountRequest is the payload for opening a new account
type OpenAccountRequest struct {
	OwnerID        string `json:"owner_id" validate:"required,uuid4"`
	AccountType    string `json:"account_type" validate:"required,oneof=checking savings business"`
	Currency       string `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	InitialBalance string `json:"initial_balance,omitempty" validate:"omitempty"`
}

// DepositRequest is the payload for a deposit
type DepositRequest struct {
	Amount      string `json:"amount" validate:"required"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// WithdrawRequest is the payload for a withdrawal
type WithdrawRequest struct {
	Amount      string `json:"amount" validate:"required"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// TransferRequest is the payload for a transfer between two accounts
type TransferRequest struct {
	FromAccountID string `json:"from_account_id" validate:"required,uuid4"`
	ToAccountID   string `json:"to_account_id" validate:"required,uuid4"`
	Amount        string `json:"amount" validate:"required"`
	Description   string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// GenerateStatementRequest is the payload for statement generation
type GenerateStatementRequest struct {
	PeriodStart string `json:"period_start" validate:"required"`
	PeriodEnd   string `json:"period_end" validate:"required"`
}
