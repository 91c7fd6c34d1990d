package service

import (
	"context"
	"testing"

	"github.com/fluxbank/demo-bank/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validApplication() CardApplicationParams {
	return CardApplicationParams{
		UserEmail:     "alice@example.com",
		Type:          models.CardTierPlus,
		CardType:      models.CardKindCredit,
		MonthlyIncome: decimal.NewFromInt(4000),
		Employment:    "employed",
		NameOnCard:    "Alice Smith",
	}
}

func TestApplyForCard(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	seedUser(t, env, "alice@example.com", "Alice", "Smith", false)
	seedAccount(t, env, "alice@example.com", models.AccountTypeChecking, "111111111111111111", decimal.NewFromInt(600))

	application, err := env.cards.Apply(ctx, validApplication())
	require.NoError(t, err)

	assert.Equal(t, models.CardApplicationStatusPending, application.Status)
	assert.Equal(t, models.CardTierPlus, application.Type)
	assert.Equal(t, "Alice Smith", application.NameOnCard)

	// no card is issued until review
	cards, err := env.cards.ListCards(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestApplyMinimumBalance(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		tier    models.CardTier
		balance int64
		wantErr bool
	}{
		{"savings tier has no minimum", models.CardTierSavings, 0, false},
		{"plus below minimum", models.CardTierPlus, 499, true},
		{"plus at minimum", models.CardTierPlus, 500, false},
		{"advance below minimum", models.CardTierAdvance, 549, true},
		{"business at minimum", models.CardTierBusiness, 10000, false},
		{"black below minimum", models.CardTierBlack, 49999, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			seedUser(t, env, "alice@example.com", "Alice", "Smith", false)
			seedAccount(t, env, "alice@example.com", models.AccountTypeChecking, "111111111111111111", decimal.NewFromInt(tt.balance))

			p := validApplication()
			p.Type = tt.tier
			_, err := env.cards.Apply(ctx, p)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ErrCodeInsufficientFunds, serviceErrorCode(t, err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyCombinedBalance(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	seedUser(t, env, "alice@example.com", "Alice", "Smith", false)
	seedAccount(t, env, "alice@example.com", models.AccountTypeChecking, "111111111111111111", decimal.NewFromInt(300))
	seedAccount(t, env, "alice@example.com", models.AccountTypeSavings, "222222222222222222", decimal.NewFromInt(300))

	// 300 + 300 clears the plus tier's 500 minimum
	_, err := env.cards.Apply(ctx, validApplication())
	require.NoError(t, err)
}

func TestApplyValidation(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	seedUser(t, env, "alice@example.com", "Alice", "Smith", false)
	seedAccount(t, env, "alice@example.com", models.AccountTypeChecking, "111111111111111111", decimal.NewFromInt(1000))

	tests := []struct {
		name   string
		mutate func(p *CardApplicationParams)
	}{
		{"unknown tier", func(p *CardApplicationParams) { p.Type = "platinum" }},
		{"unknown kind", func(p *CardApplicationParams) { p.CardType = "prepaid" }},
		{"blank name", func(p *CardApplicationParams) { p.NameOnCard = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validApplication()
			tt.mutate(&p)
			_, err := env.cards.Apply(ctx, p)
			require.Error(t, err)
			assert.Equal(t, ErrCodeInvalidInput, serviceErrorCode(t, err))
		})
	}
}

func TestReviewApplication(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	seedUser(t, env, "alice@example.com", "Alice", "Smith", false)
	seedUser(t, env, "admin@example.com", "Admin", "User", true)
	seedAccount(t, env, "alice@example.com", models.AccountTypeChecking, "111111111111111111", decimal.NewFromInt(1000))

	application, err := env.cards.Apply(ctx, validApplication())
	require.NoError(t, err)

	reviewed, err := env.cards.ReviewApplication(ctx, "admin@example.com", application.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.CardApplicationStatusApproved, reviewed.Status)

	// approval issues an active card in the applicant's name
	cards, err := env.cards.ListCards(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, models.CardStatusActive, cards[0].Status)
	assert.Equal(t, "Alice Smith", cards[0].NameOnCard)
	assert.Len(t, cards[0].Number, 16)
	assert.Len(t, cards[0].ExpiryDate, 5)

	// a reviewed application cannot be reviewed again
	_, err = env.cards.ReviewApplication(ctx, "admin@example.com", application.ID, false)
	require.Error(t, err)
	assert.Equal(t, ErrCodeRequestNotPending, serviceErrorCode(t, err))
}

func TestReviewApplicationReject(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	seedUser(t, env, "alice@example.com", "Alice", "Smith", false)
	seedUser(t, env, "admin@example.com", "Admin", "User", true)
	seedAccount(t, env, "alice@example.com", models.AccountTypeChecking, "111111111111111111", decimal.NewFromInt(1000))

	application, err := env.cards.Apply(ctx, validApplication())
	require.NoError(t, err)

	reviewed, err := env.cards.ReviewApplication(ctx, "admin@example.com", application.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.CardApplicationStatusRejected, reviewed.Status)

	cards, err := env.cards.ListCards(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestReviewApplicationRequiresAdmin(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	seedUser(t, env, "alice@example.com", "Alice", "Smith", false)
	seedAccount(t, env, "alice@example.com", models.AccountTypeChecking, "111111111111111111", decimal.NewFromInt(1000))

	application, err := env.cards.Apply(ctx, validApplication())
	require.NoError(t, err)

	_, err = env.cards.ReviewApplication(ctx, "alice@example.com", application.ID, true)
	require.Error(t, err)
	assert.Equal(t, ErrCodeUnauthorized, serviceErrorCode(t, err))
}

func TestSetCardStatus(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	seedUser(t, env, "alice@example.com", "Alice", "Smith", false)
	seedUser(t, env, "admin@example.com", "Admin", "User", true)
	seedAccount(t, env, "alice@example.com", models.AccountTypeChecking, "111111111111111111", decimal.NewFromInt(1000))

	application, err := env.cards.Apply(ctx, validApplication())
	require.NoError(t, err)
	_, err = env.cards.ReviewApplication(ctx, "admin@example.com", application.ID, true)
	require.NoError(t, err)

	cards, err := env.cards.ListCards(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Len(t, cards, 1)

	updated, err := env.cards.SetCardStatus(ctx, "alice@example.com", cards[0].ID, models.CardStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, models.CardStatusInactive, updated.Status)

	// only the owner can toggle a card
	_, err = env.cards.SetCardStatus(ctx, "admin@example.com", cards[0].ID, models.CardStatusActive)
	require.Error(t, err)
	assert.Equal(t, ErrCodeNotFound, serviceErrorCode(t, err))
}
