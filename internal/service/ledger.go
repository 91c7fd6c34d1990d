package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fluxbank/demo-bank/internal/activity"
	"github.com/fluxbank/demo-bank/internal/directory"
	"github.com/fluxbank/demo-bank/internal/events"
	"github.com/fluxbank/demo-bank/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService executes value transfers between accounts. A transfer is one
// logical operation: validate fully, write a matched debit/credit pair and
// apply both balance deltas inside a single guarded span. Any validation
// failure leaves zero mutations behind.
type LedgerService struct {
	dir      *directory.Directory
	activity *activity.Logger
	events   events.Publisher
	logger   *slog.Logger
}

// NewLedgerService creates a new LedgerService. publisher may be nil to
// disable event publishing.
func NewLedgerService(dir *directory.Directory, act *activity.Logger, publisher events.Publisher, logger *slog.Logger) *LedgerService {
	return &LedgerService{
		dir:      dir,
		activity: act,
		events:   publisher,
		logger:   logger,
	}
}

// TransferParams describes a direct send from one of the caller's accounts
// to a counterparty account number.
type TransferParams struct {
	UserEmail       string
	FromAccountID   string
	ToAccountNumber string
	Amount          decimal.Decimal
	Description     string
	Category        string
}

// TransferResult carries the matched transaction pair created by a transfer
type TransferResult struct {
	Debit  models.Transaction
	Credit models.Transaction
}

// Transfer moves money from the caller's account to the account holding the
// given account number.
func (s *LedgerService) Transfer(ctx context.Context, p TransferParams) (*TransferResult, error) {
	if err := ValidateAmount(p.Amount); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidAmount, Message: err.Error()}
	}
	if p.Description == "" {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: "description is required"}
	}

	category := p.Category
	if category == "" {
		category = "other"
	}

	var result *TransferResult
	err := s.dir.Update(ctx, func(ctx context.Context) error {
		source, err := s.dir.AccountByID(ctx, p.FromAccountID)
		if err != nil {
			return &ServiceError{Code: ErrCodeInvalidAccounts, Message: "source account not found"}
		}
		if source.UserEmail != p.UserEmail {
			return &ServiceError{Code: ErrCodeInvalidAccounts, Message: "source account not found"}
		}

		dest, err := s.dir.ResolveByNumber(ctx, p.ToAccountNumber)
		if err != nil {
			return &ServiceError{Code: ErrCodeInvalidAccounts, Message: "destination account not found"}
		}

		result, err = s.applyTransfer(ctx, *source, dest.Account, p.Amount, pairDescriptions{
			debit:          p.Description,
			debitCategory:  category,
			credit:         fmt.Sprintf("Transfer from %s", source.AccountNumber),
			creditCategory: "transfer",
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.finishTransfer(ctx, p.UserEmail, result)
	return result, nil
}

// QuickTransfer moves money between two accounts owned by the same user
func (s *LedgerService) QuickTransfer(ctx context.Context, userEmail, fromAccountID, toAccountID string, amount decimal.Decimal) (*TransferResult, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidAmount, Message: err.Error()}
	}
	if fromAccountID == toAccountID {
		return nil, &ServiceError{Code: ErrCodeInvalidAccounts, Message: "cannot transfer to the same account"}
	}

	var result *TransferResult
	err := s.dir.Update(ctx, func(ctx context.Context) error {
		source, err := s.dir.AccountByID(ctx, fromAccountID)
		if err != nil {
			return &ServiceError{Code: ErrCodeInvalidAccounts, Message: "source account not found"}
		}
		dest, err := s.dir.AccountByID(ctx, toAccountID)
		if err != nil {
			return &ServiceError{Code: ErrCodeInvalidAccounts, Message: "destination account not found"}
		}
		if source.UserEmail != userEmail || dest.UserEmail != userEmail {
			return &ServiceError{Code: ErrCodeInvalidAccounts, Message: "accounts must belong to the caller"}
		}

		result, err = s.applyTransfer(ctx, *source, *dest, amount, pairDescriptions{
			debit:          fmt.Sprintf("Transfer to %s account", dest.Type),
			debitCategory:  "transfer",
			credit:         fmt.Sprintf("Transfer from %s account", source.Type),
			creditCategory: "transfer",
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.finishTransfer(ctx, userEmail, result)
	return result, nil
}

type pairDescriptions struct {
	debit          string
	debitCategory  string
	credit         string
	creditCategory string
}

// validateTransferable checks that money can move from source to dest
// without touching storage.
func validateTransferable(source, dest models.Account, amount decimal.Decimal) error {
	if source.ID == dest.ID {
		return &ServiceError{Code: ErrCodeInvalidAccounts, Message: "cannot transfer to the same account"}
	}
	if source.Blocked() {
		return &ServiceError{Code: ErrCodeAccountBlocked, Message: "source account is blocked"}
	}
	if source.Balance.LessThan(amount) {
		return &ServiceError{Code: ErrCodeInsufficientFunds, Message: "insufficient funds"}
	}
	return nil
}

// applyTransfer performs the validated mutation. Callers must already hold
// the directory write guard and have resolved both accounts.
func (s *LedgerService) applyTransfer(ctx context.Context, source, dest models.Account, amount decimal.Decimal, desc pairDescriptions) (*TransferResult, error) {
	if err := validateTransferable(source, dest, amount); err != nil {
		return nil, err
	}

	now := time.Now()
	debit := models.Transaction{
		ID:                     uuid.New().String(),
		AccountID:              source.ID,
		Type:                   models.TransactionTypeDebit,
		Amount:                 amount,
		Description:            desc.debit,
		Category:               desc.debitCategory,
		Date:                   now,
		Status:                 models.TransactionStatusCompleted,
		RecipientAccountNumber: dest.AccountNumber,
	}
	credit := models.Transaction{
		ID:                  uuid.New().String(),
		AccountID:           dest.ID,
		Type:                models.TransactionTypeCredit,
		Amount:              amount,
		Description:         desc.credit,
		Category:            desc.creditCategory,
		Date:                now,
		Status:              models.TransactionStatusCompleted,
		SenderAccountNumber: source.AccountNumber,
	}

	accounts, err := s.dir.Accounts(ctx)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "failed to load accounts", Err: err}
	}
	for i := range accounts {
		switch accounts[i].ID {
		case source.ID:
			accounts[i].Balance = accounts[i].Balance.Sub(amount)
		case dest.ID:
			accounts[i].Balance = accounts[i].Balance.Add(amount)
		}
	}

	if err := s.dir.SaveAccounts(ctx, accounts); err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "failed to persist balances", Err: err}
	}
	if err := s.dir.AppendTransactions(ctx, debit, credit); err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "failed to persist transactions", Err: err}
	}

	return &TransferResult{Debit: debit, Credit: credit}, nil
}

// finishTransfer records the activity entry and publishes the completion
// event. Both are best-effort and never fail an already-persisted transfer.
func (s *LedgerService) finishTransfer(ctx context.Context, userEmail string, result *TransferResult) {
	s.activity.RecordAmount(ctx, models.LogTypeTransaction, "transfer",
		fmt.Sprintf("Transfer to account ••••%s", lastFour(result.Debit.RecipientAccountNumber)),
		userEmail, result.Debit.Amount, string(result.Debit.Status))

	if s.events == nil {
		return
	}

	event := events.TransferCompleted{
		DebitTransactionID:  result.Debit.ID,
		CreditTransactionID: result.Credit.ID,
		FromAccountNumber:   result.Credit.SenderAccountNumber,
		ToAccountNumber:     result.Debit.RecipientAccountNumber,
		Amount:              result.Debit.Amount,
		OccurredAt:          result.Debit.Date,
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish transfer event", "error", err, "transaction_id", result.Debit.ID)
	}
}

func lastFour(number string) string {
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}
