package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/fluxbank/demo-bank/internal/activity"
	"github.com/fluxbank/demo-bank/internal/directory"
	"github.com/fluxbank/demo-bank/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService handles account creation, listing and lookups
type AccountService struct {
	dir      *directory.Directory
	activity *activity.Logger
	logger   *slog.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(dir *directory.Directory, act *activity.Logger, logger *slog.Logger) *AccountService {
	return &AccountService{dir: dir, activity: act, logger: logger}
}

// CreateAccount opens a new account for the user. A user may hold at most
// one account of each type.
func (s *AccountService) CreateAccount(ctx context.Context, userEmail string, accountType models.AccountType) (*models.Account, error) {
	if accountType != models.AccountTypeChecking && accountType != models.AccountTypeSavings {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: "account type must be checking or savings"}
	}

	var account models.Account
	err := s.dir.Update(ctx, func(ctx context.Context) error {
		if _, err := s.dir.UserByEmail(ctx, userEmail); err != nil {
			return &ServiceError{Code: ErrCodeNotFound, Message: "user not found"}
		}

		accounts, err := s.dir.Accounts(ctx)
		if err != nil {
			return &ServiceError{Code: ErrCodeInternalError, Message: "failed to load accounts", Err: err}
		}

		for _, existing := range accounts {
			if existing.UserEmail == userEmail && existing.Type == accountType {
				return &ServiceError{
					Code:    ErrCodeAlreadyExists,
					Message: fmt.Sprintf("you already have a %s account", accountType),
				}
			}
		}

		account = models.Account{
			ID:            uuid.New().String(),
			Type:          accountType,
			AccountNumber: generateAccountNumber(),
			Balance:       decimal.Zero,
			UserEmail:     userEmail,
			Status:        models.AccountStatusActive,
			CreatedAt:     time.Now(),
		}
		return s.dir.SaveAccounts(ctx, append(accounts, account))
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, models.LogTypeAccount, "account_created",
		fmt.Sprintf("Opened %s account ••••%s", account.Type, lastFour(account.AccountNumber)), userEmail)

	return &account, nil
}

// ListAccounts returns the accounts owned by the user
func (s *AccountService) ListAccounts(ctx context.Context, userEmail string) ([]models.Account, error) {
	accounts, err := s.dir.AccountsOf(ctx, userEmail)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "failed to load accounts", Err: err}
	}
	return accounts, nil
}

// RecipientInfo identifies the holder of an account number ahead of a
// transfer or money request.
type RecipientInfo struct {
	AccountNumber string `json:"accountNumber"`
	UserEmail     string `json:"userEmail"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
}

// VerifyRecipient resolves an account number to its holder
func (s *AccountService) VerifyRecipient(ctx context.Context, accountNumber string) (*RecipientInfo, error) {
	resolved, err := s.dir.ResolveByNumber(ctx, accountNumber)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeNotFound, Message: "account not found"}
	}

	return &RecipientInfo{
		AccountNumber: resolved.Account.AccountNumber,
		UserEmail:     resolved.Owner.Email,
		FirstName:     resolved.Owner.FirstName,
		LastName:      resolved.Owner.LastName,
	}, nil
}

// UserTransactions returns all of the user's transactions, newest first
func (s *AccountService) UserTransactions(ctx context.Context, userEmail string) ([]models.Transaction, error) {
	accounts, err := s.dir.AccountsOf(ctx, userEmail)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "failed to load accounts", Err: err}
	}

	ids := make(map[string]bool, len(accounts))
	for _, account := range accounts {
		ids[account.ID] = true
	}

	all, err := s.dir.Transactions(ctx)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "failed to load transactions", Err: err}
	}

	var owned []models.Transaction
	for _, txn := range all {
		if ids[txn.AccountID] {
			owned = append(owned, txn)
		}
	}
	sortTransactionsNewestFirst(owned)
	return owned, nil
}

// AccountTransactions returns the transactions of one of the user's
// accounts, newest first.
func (s *AccountService) AccountTransactions(ctx context.Context, userEmail, accountID string) ([]models.Transaction, error) {
	account, err := s.dir.AccountByID(ctx, accountID)
	if err != nil || account.UserEmail != userEmail {
		return nil, &ServiceError{Code: ErrCodeNotFound, Message: "account not found"}
	}

	all, err := s.dir.Transactions(ctx)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "failed to load transactions", Err: err}
	}

	var owned []models.Transaction
	for _, txn := range all {
		if txn.AccountID == accountID {
			owned = append(owned, txn)
		}
	}
	sortTransactionsNewestFirst(owned)
	return owned, nil
}

func sortTransactionsNewestFirst(txns []models.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.After(txns[j].Date)
	})
}

// generateAccountNumber returns 18 random digits. Uniqueness is not
// checked; duplicate numbers are resolved first-match-wins by the resolver.
func generateAccountNumber() string {
	var b strings.Builder
	b.Grow(18)
	for i := 0; i < 18; i++ {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}
