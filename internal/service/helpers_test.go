package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/fluxbank/demo-bank/internal/activity"
	"github.com/fluxbank/demo-bank/internal/directory"
	"github.com/fluxbank/demo-bank/internal/models"
	"github.com/fluxbank/demo-bank/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	dir      *directory.Directory
	ledger   *LedgerService
	accounts *AccountService
	users    *UserService
	cards    *CardService
	admin    *AdminService
	events   *fakePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvOver(t, store.NewMemoryStore())
}

func newTestEnvOver(t *testing.T, kv store.KV) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := directory.New(kv)
	t.Cleanup(func() { _ = dir.Close() })

	act := activity.NewLogger(dir, logger)
	publisher := &fakePublisher{}

	return &testEnv{
		dir:      dir,
		ledger:   NewLedgerService(dir, act, publisher, logger),
		accounts: NewAccountService(dir, act, logger),
		users:    NewUserService(dir, act, logger),
		cards:    NewCardService(dir, act, logger),
		admin:    NewAdminService(dir, act, logger),
		events:   publisher,
	}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []any
}

func (p *fakePublisher) Publish(_ context.Context, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) published() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]any(nil), p.events...)
}

// seedUser registers a user directly in the directory
func seedUser(t *testing.T, env *testEnv, email, firstName, lastName string, isAdmin bool) {
	t.Helper()

	ctx := context.Background()
	err := env.dir.Update(ctx, func(ctx context.Context) error {
		users, err := env.dir.Users(ctx)
		if err != nil {
			return err
		}
		return env.dir.SaveUsers(ctx, append(users, models.User{
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
			IsAdmin:   isAdmin,
			CreatedAt: time.Now(),
		}))
	})
	require.NoError(t, err)
}

// seedAccount creates an account with a fixed balance and returns it
func seedAccount(t *testing.T, env *testEnv, email string, accountType models.AccountType, number string, balance decimal.Decimal) models.Account {
	t.Helper()

	account := models.Account{
		ID:            uuid.New().String(),
		Type:          accountType,
		AccountNumber: number,
		Balance:       balance,
		UserEmail:     email,
		Status:        models.AccountStatusActive,
		CreatedAt:     time.Now(),
	}

	ctx := context.Background()
	err := env.dir.Update(ctx, func(ctx context.Context) error {
		accounts, err := env.dir.Accounts(ctx)
		if err != nil {
			return err
		}
		return env.dir.SaveAccounts(ctx, append(accounts, account))
	})
	require.NoError(t, err)

	return account
}

func accountBalance(t *testing.T, env *testEnv, accountID string) decimal.Decimal {
	t.Helper()

	account, err := env.dir.AccountByID(context.Background(), accountID)
	require.NoError(t, err)
	return account.Balance
}

func serviceErrorCode(t *testing.T, err error) string {
	t.Helper()

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	return svcErr.Code
}
