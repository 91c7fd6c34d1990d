package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

// AccountStatus represents the status of an account
type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "active"
	AccountStatusBlocked AccountStatus = "blocked"
)

// Account represents a customer account with a balance.
//
// AccountNumber is an 18-digit string generated without a uniqueness check.
// Duplicate numbers are a pre-existing data anomaly; lookups resolve the
// first match deterministically.
type Account struct {
	ID            string          `json:"id"`
	Type          AccountType     `json:"type"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	UserEmail     string          `json:"userEmail"`
	Status        AccountStatus   `json:"status,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Blocked reports whether the account has been blocked by an admin
func (a *Account) Blocked() bool {
	return a.Status == AccountStatusBlocked
}
