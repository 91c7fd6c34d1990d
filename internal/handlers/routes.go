package handlers

import (
	"log/slog"
	"net/http"

	"github.com/fluxbank/demo-bank/internal/activity"
	"github.com/fluxbank/demo-bank/internal/config"
	"github.com/fluxbank/demo-bank/internal/directory"
	"github.com/fluxbank/demo-bank/internal/events"
	"github.com/fluxbank/demo-bank/internal/middleware"
	"github.com/fluxbank/demo-bank/internal/service"
)

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(
	dir *directory.Directory,
	publisher events.Publisher,
	cfg *config.Config,
	logger *slog.Logger,
) http.Handler {
	activityLog := activity.NewLogger(dir, logger)

	ledgerService := service.NewLedgerService(dir, activityLog, publisher, logger)
	accountService := service.NewAccountService(dir, activityLog, logger)
	userService := service.NewUserService(dir, activityLog, logger)
	cardService := service.NewCardService(dir, activityLog, logger)
	adminService := service.NewAdminService(dir, activityLog, logger)

	handler := NewHandler(ledgerService, accountService, userService, cardService, adminService, dir, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/signup", handler.SignUp)
	mux.HandleFunc("POST /api/v1/login", handler.Login)
	mux.HandleFunc("POST /api/v1/verify-2fa", handler.VerifyTwoFactor)
	mux.HandleFunc("POST /api/v1/logout", handler.Logout)
	mux.HandleFunc("PATCH /api/v1/profile", handler.UpdateProfile)
	mux.HandleFunc("GET /api/v1/settings", handler.GetSettings)
	mux.HandleFunc("PUT /api/v1/settings", handler.UpdateSettings)

	mux.HandleFunc("GET /api/v1/accounts", handler.ListAccounts)
	mux.HandleFunc("POST /api/v1/accounts", handler.CreateAccount)
	mux.HandleFunc("GET /api/v1/accounts/{id}/transactions", handler.ListAccountTransactions)
	mux.HandleFunc("GET /api/v1/transactions", handler.ListUserTransactions)
	mux.HandleFunc("GET /api/v1/recipients/{accountNumber}", handler.VerifyRecipient)

	mux.HandleFunc("POST /api/v1/transfers", handler.CreateTransfer)
	mux.HandleFunc("POST /api/v1/transfers/quick", handler.CreateQuickTransfer)

	mux.HandleFunc("GET /api/v1/money-requests", handler.ListMoneyRequests)
	mux.HandleFunc("POST /api/v1/money-requests", handler.CreateMoneyRequest)
	mux.HandleFunc("POST /api/v1/money-requests/{id}/approve", handler.ApproveMoneyRequest)
	mux.HandleFunc("POST /api/v1/money-requests/{id}/reject", handler.RejectMoneyRequest)

	mux.HandleFunc("GET /api/v1/cards", handler.ListCards)
	mux.HandleFunc("PATCH /api/v1/cards/{id}", handler.UpdateCardStatus)
	mux.HandleFunc("GET /api/v1/card-applications", handler.ListCardApplications)
	mux.HandleFunc("POST /api/v1/card-applications", handler.CreateCardApplication)

	mux.HandleFunc("GET /api/v1/admin/stats", handler.GetBankStats)
	mux.HandleFunc("PATCH /api/v1/admin/accounts/{id}", handler.UpdateAccount)
	mux.HandleFunc("POST /api/v1/admin/accounts/{id}/block", handler.SetAccountStatus)
	mux.HandleFunc("DELETE /api/v1/admin/accounts/{id}", handler.DeleteAccount)
	mux.HandleFunc("GET /api/v1/admin/logs", handler.GetBankLogs)
	mux.HandleFunc("GET /api/v1/admin/card-applications", handler.ListPendingCardApplications)
	mux.HandleFunc("POST /api/v1/admin/card-applications/{id}/approve", handler.ApproveCardApplication)
	mux.HandleFunc("POST /api/v1/admin/card-applications/{id}/reject", handler.RejectCardApplication)

	mux.HandleFunc("GET /health", handler.GetHealth)

	var finalHandler http.Handler = mux

	finalHandler = middleware.Latency(&cfg.App)(finalHandler)

	idempotencyRepo := directory.NewIdempotencyStore(dir)
	finalHandler = middleware.Idempotency(idempotencyRepo, logger)(finalHandler)

	return finalHandler
}
