package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyRequestStatus represents the lifecycle state of a money request
type MoneyRequestStatus string

const (
	MoneyRequestStatusPending  MoneyRequestStatus = "pending"
	MoneyRequestStatusApproved MoneyRequestStatus = "approved"
	MoneyRequestStatusRejected MoneyRequestStatus = "rejected"
)

// MoneyRequest is a pending ask from one account holder for another to
// authorize an outgoing transfer to the requester. A request is resolved
// (approved or rejected) exactly once and is immutable afterwards.
type MoneyRequest struct {
	ID                     string             `json:"id"`
	RequesterID            string             `json:"requesterId"`
	RequesterAccountNumber string             `json:"requesterAccountNumber"`
	RequesterName          string             `json:"requesterName"`
	SenderAccountNumber    string             `json:"senderAccountNumber"`
	Amount                 decimal.Decimal    `json:"amount"`
	Description            string             `json:"description"`
	Status                 MoneyRequestStatus `json:"status"`
	Date                   time.Time          `json:"date"`
}
