package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/fluxbank/demo-bank/internal/activity"
	"github.com/fluxbank/demo-bank/internal/directory"
	"github.com/fluxbank/demo-bank/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// cardTierMinBalance maps each card tier to the minimum combined account
// balance required to apply.
var cardTierMinBalance = map[models.CardTier]decimal.Decimal{
	models.CardTierSavings:  decimal.Zero,
	models.CardTierPlus:     decimal.NewFromInt(500),
	models.CardTierAdvance:  decimal.NewFromInt(550),
	models.CardTierBusiness: decimal.NewFromInt(10000),
	models.CardTierBlack:    decimal.NewFromInt(50000),
}

// CardService handles card applications, issuance and status toggles
type CardService struct {
	dir      *directory.Directory
	activity *activity.Logger
	logger   *slog.Logger
}

// NewCardService creates a new CardService
func NewCardService(dir *directory.Directory, act *activity.Logger, logger *slog.Logger) *CardService {
	return &CardService{dir: dir, activity: act, logger: logger}
}

// CardApplicationParams carries a customer's card application
type CardApplicationParams struct {
	UserEmail     string
	Type          models.CardTier
	CardType      models.CardKind
	MonthlyIncome decimal.Decimal
	Employment    string
	NameOnCard    string
}

// Apply files a card application after checking the tier's minimum combined
// balance requirement. The application stays pending until an admin reviews
// it.
func (s *CardService) Apply(ctx context.Context, p CardApplicationParams) (*models.CardApplication, error) {
	minBalance, ok := cardTierMinBalance[p.Type]
	if !ok {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: "invalid card type selected"}
	}
	if p.CardType != models.CardKindCredit && p.CardType != models.CardKindDebit {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: "card must be credit or debit"}
	}
	if strings.TrimSpace(p.NameOnCard) == "" {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: "please enter the name to appear on the card"}
	}

	var application models.CardApplication
	err := s.dir.Update(ctx, func(ctx context.Context) error {
		accounts, err := s.dir.AccountsOf(ctx, p.UserEmail)
		if err != nil {
			return &ServiceError{Code: ErrCodeInternalError, Message: "failed to load accounts", Err: err}
		}

		total := decimal.Zero
		for _, account := range accounts {
			total = total.Add(account.Balance)
		}
		if total.LessThan(minBalance) {
			return &ServiceError{
				Code: ErrCodeInsufficientFunds,
				Message: fmt.Sprintf("minimum balance requirement of $%s not met, your total balance: $%s",
					minBalance.StringFixed(2), total.StringFixed(2)),
			}
		}

		application = models.CardApplication{
			ID:            uuid.New().String(),
			Type:          p.Type,
			CardType:      p.CardType,
			Status:        models.CardApplicationStatusPending,
			AppliedAt:     time.Now(),
			UserEmail:     p.UserEmail,
			MonthlyIncome: p.MonthlyIncome,
			Employment:    p.Employment,
			NameOnCard:    p.NameOnCard,
		}

		applications, err := s.dir.CardApplications(ctx)
		if err != nil {
			return &ServiceError{Code: ErrCodeInternalError, Message: "failed to load applications", Err: err}
		}
		return s.dir.SaveCardApplications(ctx, append(applications, application))
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, models.LogTypeCard, "card_application",
		fmt.Sprintf("Applied for %s %s card", p.Type, p.CardType), p.UserEmail)

	return &application, nil
}

// ListCards returns the user's issued cards
func (s *CardService) ListCards(ctx context.Context, userEmail string) ([]models.Card, error) {
	cards, err := s.dir.Cards(ctx)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "failed to load cards", Err: err}
	}

	var owned []models.Card
	for _, card := range cards {
		if card.UserEmail == userEmail {
			owned = append(owned, card)
		}
	}
	return owned, nil
}

// ListApplications returns the user's card applications
func (s *CardService) ListApplications(ctx context.Context, userEmail string) ([]models.CardApplication, error) {
	applications, err := s.dir.CardApplications(ctx)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "failed to load applications", Err: err}
	}

	var owned []models.CardApplication
	for _, app := range applications {
		if app.UserEmail == userEmail {
			owned = append(owned, app)
		}
	}
	return owned, nil
}

// SetCardStatus activates or deactivates one of the user's cards
func (s *CardService) SetCardStatus(ctx context.Context, userEmail, cardID string, status models.CardStatus) (*models.Card, error) {
	if status != models.CardStatusActive && status != models.CardStatusInactive {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: "status must be active or inactive"}
	}

	var updated models.Card
	err := s.dir.Update(ctx, func(ctx context.Context) error {
		cards, err := s.dir.Cards(ctx)
		if err != nil {
			return &ServiceError{Code: ErrCodeInternalError, Message: "failed to load cards", Err: err}
		}

		for i := range cards {
			if cards[i].ID != cardID || cards[i].UserEmail != userEmail {
				continue
			}
			cards[i].Status = status
			updated = cards[i]
			return s.dir.SaveCards(ctx, cards)
		}
		return &ServiceError{Code: ErrCodeNotFound, Message: "card not found"}
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, models.LogTypeCard, "card_status_changed",
		fmt.Sprintf("Card ••••%s set to %s", lastFour(updated.Number), status), userEmail)

	return &updated, nil
}

// ReviewApplication approves or rejects a pending application. Approval
// issues a card in the applicant's name.
func (s *CardService) ReviewApplication(ctx context.Context, reviewerEmail, applicationID string, approve bool) (*models.CardApplication, error) {
	var reviewed models.CardApplication
	err := s.dir.Update(ctx, func(ctx context.Context) error {
		reviewer, err := s.dir.UserByEmail(ctx, reviewerEmail)
		if err != nil || !reviewer.IsAdmin {
			return &ServiceError{Code: ErrCodeUnauthorized, Message: "admin access required"}
		}

		applications, err := s.dir.CardApplications(ctx)
		if err != nil {
			return &ServiceError{Code: ErrCodeInternalError, Message: "failed to load applications", Err: err}
		}

		idx := -1
		for i := range applications {
			if applications[i].ID == applicationID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return &ServiceError{Code: ErrCodeNotFound, Message: "application not found"}
		}
		if applications[idx].Status != models.CardApplicationStatusPending {
			return &ServiceError{Code: ErrCodeRequestNotPending, Message: "application has already been reviewed"}
		}

		if approve {
			applications[idx].Status = models.CardApplicationStatusApproved
		} else {
			applications[idx].Status = models.CardApplicationStatusRejected
		}
		reviewed = applications[idx]

		if err := s.dir.SaveCardApplications(ctx, applications); err != nil {
			return err
		}

		if !approve {
			return nil
		}

		card := models.Card{
			ID:         uuid.New().String(),
			Type:       reviewed.Type,
			CardType:   reviewed.CardType,
			Number:     generateCardNumber(),
			ExpiryDate: time.Now().AddDate(4, 0, 0).Format("01/06"),
			Status:     models.CardStatusActive,
			NameOnCard: reviewed.NameOnCard,
			UserEmail:  reviewed.UserEmail,
		}
		cards, err := s.dir.Cards(ctx)
		if err != nil {
			return &ServiceError{Code: ErrCodeInternalError, Message: "failed to load cards", Err: err}
		}
		return s.dir.SaveCards(ctx, append(cards, card))
	})
	if err != nil {
		return nil, err
	}

	action := "card_application_rejected"
	if approve {
		action = "card_application_approved"
	}
	s.activity.Record(ctx, models.LogTypeCard, action,
		fmt.Sprintf("Reviewed %s card application for %s", reviewed.Type, reviewed.UserEmail), reviewerEmail)

	return &reviewed, nil
}

// generateCardNumber returns 16 random digits
func generateCardNumber() string {
	var b strings.Builder
	b.Grow(16)
	for i := 0; i < 16; i++ {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}
