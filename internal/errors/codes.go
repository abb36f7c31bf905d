package errors

// ErrorCode represents a machine-readable error identifier
type ErrorCode string

const (
	// Validation errors
	ErrCodeValidationFailed ErrorCode = "VALIDATION_001"
	ErrCodeInvalidAmount    ErrorCode = "VALIDATION_002"
	ErrCodeInvalidPeriod    ErrorCode = "VALIDATION_003"
	ErrCodeInvalidUUID      ErrorCode = "VALIDATION_004"

	// Account errors
	ErrCodeAccountNotFound     ErrorCode = "ACCOUNT_001"
	ErrCodeAccountClosed       ErrorCode = "ACCOUNT_002"
	ErrCodeAccountNumberExists ErrorCode = "ACCOUNT_003"
	ErrCodeNonZeroBalance      ErrorCode = "ACCOUNT_004"
	ErrCodeInvalidAccountType  ErrorCode = "ACCOUNT_005"

	// Ledger operation errors
	ErrCodeInsufficientFunds   ErrorCode = "TRANSACTION_001"
	ErrCodeTransactionNotFound ErrorCode = "TRANSACTION_002"
	ErrCodeSameAccountTransfer ErrorCode = "TRANSFER_001"
	ErrCodeTransferFailed      ErrorCode = "TRANSFER_002"

	// Statement errors
	ErrCodeStatementNotFound ErrorCode = "STATEMENT_001"
	ErrCodeStatementPeriod   ErrorCode = "STATEMENT_002"

	// System errors
	ErrCodeInternalError      ErrorCode = "SYSTEM_001"
	ErrCodeDatabaseError      ErrorCode = "SYSTEM_002"
	ErrCodeRateLimitExceeded  ErrorCode = "SYSTEM_003"
	ErrCodeServiceUnavailable ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to human-readable messages
var errorMessages = map[ErrorCode]string{
	ErrCodeValidationFailed: "Request validation failed",
	ErrCodeInvalidAmount:    "Amount must be a positive value",
	ErrCodeInvalidPeriod:    "Period end must not precede period start",
	ErrCodeInvalidUUID:      "Invalid identifier format",

	ErrCodeAccountNotFound:     "Account not found",
	ErrCodeAccountClosed:       "Account is closed",
	ErrCodeAccountNumberExists: "Account number already exists",
	ErrCodeNonZeroBalance:      "Account balance must be zero to close",
	ErrCodeInvalidAccountType:  "Invalid account type",

	ErrCodeInsufficientFunds:   "Insufficient funds",
	ErrCodeTransactionNotFound: "Transaction not found",
	ErrCodeSameAccountTransfer: "Source and destination accounts must differ",
	ErrCodeTransferFailed:      "Transfer could not be completed",

	ErrCodeStatementNotFound: "Statement not found",
	ErrCodeStatementPeriod:   "Invalid statement period",

	ErrCodeInternalError:      "An internal error occurred",
	ErrCodeDatabaseError:      "A database error occurred",
	ErrCodeRateLimitExceeded:  "Too many requests",
	ErrCodeServiceUnavailable: "Service temporarily unavailable",
}

// GetMessage returns the human-readable message for an error code
func GetMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "Unknown error"
}
