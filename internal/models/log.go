package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LogType categorizes bank activity log entries
type LogType string

const (
	LogTypeAccount     LogType = "account"
	LogTypeTransaction LogType = "transaction"
	LogTypeCard        LogType = "card"
	LogTypeAuth        LogType = "auth"
	LogTypeUser        LogType = "user"
)

// LogEntry records a notable action in the bank activity log
type LogEntry struct {
	ID        string           `json:"id"`
	Type      LogType          `json:"type"`
	Action    string           `json:"action"`
	Details   string           `json:"details"`
	UserEmail string           `json:"userEmail"`
	Timestamp time.Time        `json:"timestamp"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Status    string           `json:"status,omitempty"`
}
