package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// TransactionStatus represents the status of a transaction
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
)

// Transaction represents a ledger entry for account activity.
//
// Transfers always produce a matched pair: a debit on the source account
// referencing the destination's account number, and a credit on the
// destination referencing the source's. Both sides share a timestamp.
// Records are immutable once created.
type Transaction struct {
	ID          string            `json:"id"`
	AccountID   string            `json:"accountId"`
	Type        TransactionType   `json:"type"`
	Amount      decimal.Decimal   `json:"amount"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Date        time.Time         `json:"date"`
	Status      TransactionStatus `json:"status"`
	// Counterpart references carry an account number, not an account ID.
	// The relationship is denormalized and not enforced by the store.
	RecipientAccountNumber string `json:"recipientAccountNumber,omitempty"`
	SenderAccountNumber    string `json:"senderAccountNumber,omitempty"`
}
