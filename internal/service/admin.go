package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fluxbank/demo-bank/internal/activity"
	"github.com/fluxbank/demo-bank/internal/directory"
	"github.com/fluxbank/demo-bank/internal/models"
	"github.com/shopspring/decimal"
)

// AdminService provides oversight operations: bank-wide stats, account
// edits, blocking and deletion, and activity log access.
type AdminService struct {
	dir      *directory.Directory
	activity *activity.Logger
	logger   *slog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(dir *directory.Directory, act *activity.Logger, logger *slog.Logger) *AdminService {
	return &AdminService{dir: dir, activity: act, logger: logger}
}

// BankStats summarizes the bank for the admin dashboard
type BankStats struct {
	TotalBalance     decimal.Decimal `json:"totalBalance"`
	TotalAccounts    int             `json:"totalAccounts"`
	TotalUsers       int             `json:"totalUsers"`
	TotalCards       int             `json:"totalCards"`
	CheckingAccounts int             `json:"checkingAccounts"`
	SavingsAccounts  int             `json:"savingsAccounts"`
	AverageBalance   decimal.Decimal `json:"averageBalance"`
}

func (s *AdminService) requireAdmin(ctx context.Context, email string) error {
	user, err := s.dir.UserByEmail(ctx, email)
	if err != nil || !user.IsAdmin {
		return &ServiceError{Code: ErrCodeUnauthorized, Message: "admin access required"}
	}
	return nil
}

// Stats computes bank-wide statistics. Admin users are excluded from the
// user count.
func (s *AdminService) Stats(ctx context.Context, adminEmail string) (*BankStats, error) {
	if err := s.requireAdmin(ctx, adminEmail); err != nil {
		return nil, err
	}

	accounts, err := s.dir.Accounts(ctx)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "failed to load accounts", Err: err}
	}
	users, err := s.dir.Users(ctx)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "failed to load users", Err: err}
	}
	cards, err := s.dir.Cards(ctx)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "failed to load cards", Err: err}
	}

	stats := BankStats{
		TotalBalance:   decimal.Zero,
		TotalAccounts:  len(accounts),
		TotalCards:     len(cards),
		AverageBalance: decimal.Zero,
	}
	for _, account := range accounts {
		stats.TotalBalance = stats.TotalBalance.Add(account.Balance)
		switch account.Type {
		case models.AccountTypeChecking:
			stats.CheckingAccounts++
		case models.AccountTypeSavings:
			stats.SavingsAccounts++
		}
	}
	for _, user := range users {
		if !user.IsAdmin {
			stats.TotalUsers++
		}
	}
	if len(accounts) > 0 {
		stats.AverageBalance = stats.TotalBalance.Div(decimal.NewFromInt(int64(len(accounts))))
	}

	return &stats, nil
}

// AccountUpdate carries admin edits to an account. Nil fields are left
// unchanged.
type AccountUpdate struct {
	Balance *decimal.Decimal
	Type    *models.AccountType
}

// UpdateAccount applies admin edits to an account
func (s *AdminService) UpdateAccount(ctx context.Context, adminEmail, accountID string, update AccountUpdate) (*models.Account, error) {
	if err := s.requireAdmin(ctx, adminEmail); err != nil {
		return nil, err
	}
	if update.Type != nil && *update.Type != models.AccountTypeChecking && *update.Type != models.AccountTypeSavings {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: "account type must be checking or savings"}
	}

	var updated models.Account
	err := s.dir.Update(ctx, func(ctx context.Context) error {
		accounts, err := s.dir.Accounts(ctx)
		if err != nil {
			return &ServiceError{Code: ErrCodeInternalError, Message: "failed to load accounts", Err: err}
		}

		for i := range accounts {
			if accounts[i].ID != accountID {
				continue
			}
			if update.Balance != nil {
				accounts[i].Balance = *update.Balance
			}
			if update.Type != nil {
				accounts[i].Type = *update.Type
			}
			updated = accounts[i]
			return s.dir.SaveAccounts(ctx, accounts)
		}
		return &ServiceError{Code: ErrCodeNotFound, Message: "account not found"}
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, models.LogTypeAccount, "account_edited",
		fmt.Sprintf("Admin edited account ••••%s", lastFour(updated.AccountNumber)), adminEmail)

	return &updated, nil
}

// SetAccountStatus blocks or unblocks an account
func (s *AdminService) SetAccountStatus(ctx context.Context, adminEmail, accountID string, status models.AccountStatus) (*models.Account, error) {
	if err := s.requireAdmin(ctx, adminEmail); err != nil {
		return nil, err
	}
	if status != models.AccountStatusActive && status != models.AccountStatusBlocked {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: "status must be active or blocked"}
	}

	var updated models.Account
	err := s.dir.Update(ctx, func(ctx context.Context) error {
		accounts, err := s.dir.Accounts(ctx)
		if err != nil {
			return &ServiceError{Code: ErrCodeInternalError, Message: "failed to load accounts", Err: err}
		}

		for i := range accounts {
			if accounts[i].ID != accountID {
				continue
			}
			accounts[i].Status = status
			updated = accounts[i]
			return s.dir.SaveAccounts(ctx, accounts)
		}
		return &ServiceError{Code: ErrCodeNotFound, Message: "account not found"}
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, models.LogTypeAccount, "account_status_changed",
		fmt.Sprintf("Admin set account ••••%s to %s", lastFour(updated.AccountNumber), status), adminEmail)

	return &updated, nil
}

// DeleteAccount removes an account. Its transactions are kept as historical
// records.
func (s *AdminService) DeleteAccount(ctx context.Context, adminEmail, accountID string) error {
	if err := s.requireAdmin(ctx, adminEmail); err != nil {
		return err
	}

	var deleted models.Account
	err := s.dir.Update(ctx, func(ctx context.Context) error {
		accounts, err := s.dir.Accounts(ctx)
		if err != nil {
			return &ServiceError{Code: ErrCodeInternalError, Message: "failed to load accounts", Err: err}
		}

		remaining := accounts[:0]
		found := false
		for _, account := range accounts {
			if account.ID == accountID {
				deleted = account
				found = true
				continue
			}
			remaining = append(remaining, account)
		}
		if !found {
			return &ServiceError{Code: ErrCodeNotFound, Message: "account not found"}
		}
		return s.dir.SaveAccounts(ctx, remaining)
	})
	if err != nil {
		return err
	}

	s.activity.Record(ctx, models.LogTypeAccount, "account_deleted",
		fmt.Sprintf("Admin deleted account ••••%s", lastFour(deleted.AccountNumber)), adminEmail)

	return nil
}

// Logs returns activity log entries, newest first, optionally filtered by
// type and capped at limit (0 means no cap).
func (s *AdminService) Logs(ctx context.Context, adminEmail string, logType models.LogType, limit int) ([]models.LogEntry, error) {
	if err := s.requireAdmin(ctx, adminEmail); err != nil {
		return nil, err
	}

	logs, err := s.dir.BankLogs(ctx)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "failed to load activity log", Err: err}
	}

	var out []models.LogEntry
	for _, entry := range logs {
		if logType != "" && entry.Type != logType {
			continue
		}
		out = append(out, entry)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// PendingCardApplications lists all pending applications for admin review
func (s *AdminService) PendingCardApplications(ctx context.Context, adminEmail string) ([]models.CardApplication, error) {
	if err := s.requireAdmin(ctx, adminEmail); err != nil {
		return nil, err
	}

	applications, err := s.dir.CardApplications(ctx)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "failed to load applications", Err: err}
	}

	var pending []models.CardApplication
	for _, app := range applications {
		if app.Status == models.CardApplicationStatusPending {
			pending = append(pending, app)
		}
	}
	return pending, nil
}
