package service

import "fmt"

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeInvalidAccounts    = "invalid_accounts"
	ErrCodeInvalidAmount      = "invalid_amount"
	ErrCodeInsufficientFunds  = "insufficient_funds"
	ErrCodeAccountBlocked     = "account_blocked"
	ErrCodeInvalidInput       = "invalid_input"
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeInvalidCode        = "invalid_code"
	ErrCodeTooManyAttempts    = "too_many_attempts"
	ErrCodeNotFound           = "not_found"
	ErrCodeAlreadyExists      = "already_exists"
	ErrCodeRequestNotPending  = "request_not_pending"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeInternalError      = "internal_error"
)
