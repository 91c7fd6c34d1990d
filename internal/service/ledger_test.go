package service

import (
	"context"
	"testing"

	"github.com/fluxbank/demo-bank/internal/events"
	"github.com/fluxbank/demo-bank/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransfer(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	seedUser(t, env, "alice@example.com", "Alice", "Smith", false)
	seedUser(t, env, "bob@example.com", "Bob", "Jones", false)
	source := seedAccount(t, env, "alice@example.com", models.AccountTypeChecking, "111111111111111111", decimal.NewFromInt(100))
	dest := seedAccount(t, env, "bob@example.com", models.AccountTypeChecking, "222222222222222222", decimal.NewFromInt(50))

	result, err := env.ledger.Transfer(ctx, TransferParams{
		UserEmail:       "alice@example.com",
		FromAccountID:   source.ID,
		ToAccountNumber: dest.AccountNumber,
		Amount:          decimal.NewFromInt(30),
		Description:     "rent",
		Category:        "housing",
	})
	require.NoError(t, err)

	assert.True(t, accountBalance(t, env, source.ID).Equal(decimal.NewFromInt(70)))
	assert.True(t, accountBalance(t, env, dest.ID).Equal(decimal.NewFromInt(80)))

	// matched pair: same amount, same timestamp, opposite references
	assert.Equal(t, models.TransactionTypeDebit, result.Debit.Type)
	assert.Equal(t, models.TransactionTypeCredit, result.Credit.Type)
	assert.True(t, result.Debit.Amount.Equal(result.Credit.Amount))
	assert.Equal(t, result.Debit.Date, result.Credit.Date)
	assert.Equal(t, source.ID, result.Debit.AccountID)
	assert.Equal(t, dest.ID, result.Credit.AccountID)
	assert.Equal(t, dest.AccountNumber, result.Debit.RecipientAccountNumber)
	assert.Equal(t, source.AccountNumber, result.Credit.SenderAccountNumber)
	assert.Equal(t, models.TransactionStatusCompleted, result.Debit.Status)
	assert.Equal(t, models.TransactionStatusCompleted, result.Credit.Status)

	assert.Equal(t, "rent", result.Debit.Description)
	assert.Equal(t, "housing", result.Debit.Category)
	assert.Equal(t, "Transfer from 111111111111111111", result.Credit.Description)
	assert.Equal(t, "transfer", result.Credit.Category)

	txns, err := env.dir.Transactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txns, 2)

	published := env.events.published()
	require.Len(t, published, 1)
	event, ok := published[0].(events.TransferCompleted)
	require.True(t, ok)
	assert.Equal(t, result.Debit.ID, event.DebitTransactionID)
	assert.Equal(t, dest.AccountNumber, event.ToAccountNumber)
}

func TestTransferValidationLeavesNoMutations(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		params   func(source, dest models.Account) TransferParams
		wantCode string
	}{
		{
			name: "zero amount",
			params: func(source, dest models.Account) TransferParams {
				return TransferParams{
					UserEmail:       "alice@example.com",
					FromAccountID:   source.ID,
					ToAccountNumber: dest.AccountNumber,
					Amount:          decimal.Zero,
					Description:     "x",
				}
			},
			wantCode: ErrCodeInvalidAmount,
		},
		{
			name: "negative amount",
			params: func(source, dest models.Account) TransferParams {
				return TransferParams{
					UserEmail:       "alice@example.com",
					FromAccountID:   source.ID,
					ToAccountNumber: dest.AccountNumber,
					Amount:          decimal.NewFromInt(-5),
					Description:     "x",
				}
			},
			wantCode: ErrCodeInvalidAmount,
		},
		{
			name: "missing description",
			params: func(source, dest models.Account) TransferParams {
				return TransferParams{
					UserEmail:       "alice@example.com",
					FromAccountID:   source.ID,
					ToAccountNumber: dest.AccountNumber,
					Amount:          decimal.NewFromInt(5),
				}
			},
			wantCode: ErrCodeInvalidInput,
		},
		{
			name: "insufficient funds",
			params: func(source, dest models.Account) TransferParams {
				return TransferParams{
					UserEmail:       "alice@example.com",
					FromAccountID:   source.ID,
					ToAccountNumber: dest.AccountNumber,
					Amount:          decimal.NewFromInt(50),
					Description:     "too much",
				}
			},
			wantCode: ErrCodeInsufficientFunds,
		},
		{
			name: "unknown destination",
			params: func(source, dest models.Account) TransferParams {
				return TransferParams{
					UserEmail:       "alice@example.com",
					FromAccountID:   source.ID,
					ToAccountNumber: "999999999999999999",
					Amount:          decimal.NewFromInt(5),
					Description:     "nowhere",
				}
			},
			wantCode: ErrCodeInvalidAccounts,
		},
		{
			name: "source not owned by caller",
			params: func(source, dest models.Account) TransferParams {
				return TransferParams{
					UserEmail:       "mallory@example.com",
					FromAccountID:   source.ID,
					ToAccountNumber: dest.AccountNumber,
					Amount:          decimal.NewFromInt(5),
					Description:     "theft",
				}
			},
			wantCode: ErrCodeInvalidAccounts,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			seedUser(t, env, "alice@example.com", "Alice", "Smith", false)
			seedUser(t, env, "bob@example.com", "Bob", "Jones", false)
			source := seedAccount(t, env, "alice@example.com", models.AccountTypeChecking, "111111111111111111", decimal.NewFromInt(10))
			dest := seedAccount(t, env, "bob@example.com", models.AccountTypeChecking, "222222222222222222", decimal.NewFromInt(10))

			_, err := env.ledger.Transfer(ctx, tt.params(source, dest))
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, serviceErrorCode(t, err))

			// failed validation must leave zero mutations behind
			assert.True(t, accountBalance(t, env, source.ID).Equal(decimal.NewFromInt(10)))
			assert.True(t, accountBalance(t, env, dest.ID).Equal(decimal.NewFromInt(10)))
			txns, err := env.dir.Transactions(ctx)
			require.NoError(t, err)
			assert.Empty(t, txns)
			assert.Empty(t, env.events.published())
		})
	}
}

func TestTransferBlockedSource(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	seedUser(t, env, "alice@example.com", "Alice", "Smith", false)
	seedUser(t, env, "bob@example.com", "Bob", "Jones", false)
	source := seedAccount(t, env, "alice@example.com", models.AccountTypeChecking, "111111111111111111", decimal.NewFromInt(100))
	dest := seedAccount(t, env, "bob@example.com", models.AccountTypeChecking, "222222222222222222", decimal.NewFromInt(0))

	err := env.dir.Update(ctx, func(ctx context.Context) error {
		accounts, err := env.dir.Accounts(ctx)
		if err != nil {
			return err
		}
		accounts[0].Status = models.AccountStatusBlocked
		return env.dir.SaveAccounts(ctx, accounts)
	})
	require.NoError(t, err)

	_, err = env.ledger.Transfer(ctx, TransferParams{
		UserEmail:       "alice@example.com",
		FromAccountID:   source.ID,
		ToAccountNumber: dest.AccountNumber,
		Amount:          decimal.NewFromInt(10),
		Description:     "blocked",
	})
	require.Error(t, err)
	assert.Equal(t, ErrCodeAccountBlocked, serviceErrorCode(t, err))
	assert.True(t, accountBalance(t, env, dest.ID).IsZero())
}

func TestQuickTransfer(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	seedUser(t, env, "alice@example.com", "Alice", "Smith", false)
	checking := seedAccount(t, env, "alice@example.com", models.AccountTypeChecking, "111111111111111111", decimal.NewFromInt(100))
	savings := seedAccount(t, env, "alice@example.com", models.AccountTypeSavings, "222222222222222222", decimal.NewFromInt(0))

	result, err := env.ledger.QuickTransfer(ctx, "alice@example.com", checking.ID, savings.ID, decimal.NewFromInt(40))
	require.NoError(t, err)

	assert.True(t, accountBalance(t, env, checking.ID).Equal(decimal.NewFromInt(60)))
	assert.True(t, accountBalance(t, env, savings.ID).Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "Transfer to savings account", result.Debit.Description)
	assert.Equal(t, "Transfer from checking account", result.Credit.Description)
	assert.Equal(t, "transfer", result.Debit.Category)
	assert.Equal(t, "transfer", result.Credit.Category)
}

func TestQuickTransferSameAccount(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	seedUser(t, env, "alice@example.com", "Alice", "Smith", false)
	checking := seedAccount(t, env, "alice@example.com", models.AccountTypeChecking, "111111111111111111", decimal.NewFromInt(100))

	_, err := env.ledger.QuickTransfer(ctx, "alice@example.com", checking.ID, checking.ID, decimal.NewFromInt(10))
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidAccounts, serviceErrorCode(t, err))
	assert.True(t, accountBalance(t, env, checking.ID).Equal(decimal.NewFromInt(100)))
}

func TestQuickTransferForeignAccount(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	seedUser(t, env, "alice@example.com", "Alice", "Smith", false)
	seedUser(t, env, "bob@example.com", "Bob", "Jones", false)
	mine := seedAccount(t, env, "alice@example.com", models.AccountTypeChecking, "111111111111111111", decimal.NewFromInt(100))
	theirs := seedAccount(t, env, "bob@example.com", models.AccountTypeChecking, "222222222222222222", decimal.NewFromInt(0))

	_, err := env.ledger.QuickTransfer(ctx, "alice@example.com", mine.ID, theirs.ID, decimal.NewFromInt(10))
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidAccounts, serviceErrorCode(t, err))
}

func TestTransferConservation(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	seedUser(t, env, "alice@example.com", "Alice", "Smith", false)
	seedUser(t, env, "bob@example.com", "Bob", "Jones", false)
	source := seedAccount(t, env, "alice@example.com", models.AccountTypeChecking, "111111111111111111", decimal.NewFromInt(500))
	dest := seedAccount(t, env, "bob@example.com", models.AccountTypeChecking, "222222222222222222", decimal.NewFromInt(500))

	for i := 0; i < 5; i++ {
		_, err := env.ledger.Transfer(ctx, TransferParams{
			UserEmail:       "alice@example.com",
			FromAccountID:   source.ID,
			ToAccountNumber: dest.AccountNumber,
			Amount:          decimal.NewFromInt(37),
			Description:     "installment",
		})
		require.NoError(t, err)
	}

	total := accountBalance(t, env, source.ID).Add(accountBalance(t, env, dest.ID))
	assert.True(t, total.Equal(decimal.NewFromInt(1000)), "total balance must be conserved, got %s", total)
}
