// Package events defines the outbound event contract for completed ledger
// mutations.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Publisher delivers events to an external broker. A nil Publisher disables
// publishing entirely.
type Publisher interface {
	Publish(ctx context.Context, event any) error
	Close() error
}

// TransferCompleted is emitted after a transfer's paired transactions and
// balance updates have been persisted.
type TransferCompleted struct {
	DebitTransactionID  string          `json:"debit_transaction_id"`
	CreditTransactionID string          `json:"credit_transaction_id"`
	FromAccountNumber   string          `json:"from_account_number"`
	ToAccountNumber     string          `json:"to_account_number"`
	Amount              decimal.Decimal `json:"amount"`
	OccurredAt          time.Time       `json:"occurred_at"`
}
