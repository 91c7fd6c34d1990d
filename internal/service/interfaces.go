package service

import (
	"context"

	"github.com/fluxbank/demo-bank/internal/models"
	"github.com/shopspring/decimal"
)

// Ledger executes transfers and money-request flows
type Ledger interface {
	Transfer(ctx context.Context, p TransferParams) (*TransferResult, error)
	QuickTransfer(ctx context.Context, userEmail, fromAccountID, toAccountID string, amount decimal.Decimal) (*TransferResult, error)
	RequestMoney(ctx context.Context, p RequestMoneyParams) (*models.MoneyRequest, error)
	PendingRequestsFor(ctx context.Context, userEmail string) ([]models.MoneyRequest, error)
	ApproveRequest(ctx context.Context, userEmail, requestID string) (*TransferResult, error)
	RejectRequest(ctx context.Context, userEmail, requestID string) error
}

// Accounts handles account lifecycle and lookups
type Accounts interface {
	CreateAccount(ctx context.Context, userEmail string, accountType models.AccountType) (*models.Account, error)
	ListAccounts(ctx context.Context, userEmail string) ([]models.Account, error)
	VerifyRecipient(ctx context.Context, accountNumber string) (*RecipientInfo, error)
	UserTransactions(ctx context.Context, userEmail string) ([]models.Transaction, error)
	AccountTransactions(ctx context.Context, userEmail, accountID string) ([]models.Transaction, error)
}

// Users handles registration, sign-in and profiles
type Users interface {
	SignUp(ctx context.Context, p SignUpParams) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	VerifyTwoFactor(ctx context.Context, email, code string) error
	Logout(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, email string, update ProfileUpdate) (*models.User, error)
}

// Cards handles card applications and issued cards
type Cards interface {
	Apply(ctx context.Context, p CardApplicationParams) (*models.CardApplication, error)
	ListCards(ctx context.Context, userEmail string) ([]models.Card, error)
	ListApplications(ctx context.Context, userEmail string) ([]models.CardApplication, error)
	SetCardStatus(ctx context.Context, userEmail, cardID string, status models.CardStatus) (*models.Card, error)
	ReviewApplication(ctx context.Context, reviewerEmail, applicationID string, approve bool) (*models.CardApplication, error)
}

// Admin provides oversight operations
type Admin interface {
	Stats(ctx context.Context, adminEmail string) (*BankStats, error)
	UpdateAccount(ctx context.Context, adminEmail, accountID string, update AccountUpdate) (*models.Account, error)
	SetAccountStatus(ctx context.Context, adminEmail, accountID string, status models.AccountStatus) (*models.Account, error)
	DeleteAccount(ctx context.Context, adminEmail, accountID string) error
	Logs(ctx context.Context, adminEmail string, logType models.LogType, limit int) ([]models.LogEntry, error)
	PendingCardApplications(ctx context.Context, adminEmail string) ([]models.CardApplication, error)
}

// Ensure concrete types implement interfaces
var (
	_ Ledger   = (*LedgerService)(nil)
	_ Accounts = (*AccountService)(nil)
	_ Users    = (*UserService)(nil)
	_ Cards    = (*CardService)(nil)
	_ Admin    = (*AdminService)(nil)
)
