package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CardTier represents the product tier of a card
type CardTier string

const (
	CardTierSavings  CardTier = "savings"
	CardTierPlus     CardTier = "plus"
	CardTierAdvance  CardTier = "advance"
	CardTierBusiness CardTier = "business"
	CardTierBlack    CardTier = "black"
)

// CardKind distinguishes credit from debit cards
type CardKind string

const (
	CardKindCredit CardKind = "credit"
	CardKindDebit  CardKind = "debit"
)

// CardStatus represents whether a card is usable
type CardStatus string

const (
	CardStatusActive   CardStatus = "active"
	CardStatusInactive CardStatus = "inactive"
)

// Card represents an issued card
type Card struct {
	ID         string     `json:"id"`
	Type       CardTier   `json:"type"`
	CardType   CardKind   `json:"cardType"`
	Number     string     `json:"number"`
	ExpiryDate string     `json:"expiryDate"`
	Status     CardStatus `json:"status"`
	NameOnCard string     `json:"nameOnCard"`
	UserEmail  string     `json:"userEmail"`
}

// CardApplicationStatus represents the review state of a card application
type CardApplicationStatus string

const (
	CardApplicationStatusPending  CardApplicationStatus = "pending"
	CardApplicationStatusApproved CardApplicationStatus = "approved"
	CardApplicationStatusRejected CardApplicationStatus = "rejected"
)

// CardApplication represents a customer's request for a new card,
// reviewed by an admin before a Card is issued
type CardApplication struct {
	ID            string                `json:"id"`
	Type          CardTier              `json:"type"`
	CardType      CardKind              `json:"cardType"`
	Status        CardApplicationStatus `json:"status"`
	AppliedAt     time.Time             `json:"appliedAt"`
	UserEmail     string                `json:"userEmail"`
	MonthlyIncome decimal.Decimal       `json:"monthlyIncome"`
	Employment    string                `json:"employment"`
	NameOnCard    string                `json:"nameOnCard"`
}
