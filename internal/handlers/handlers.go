// Package handlers implements HTTP handlers for the bank API.
package handlers

import (
	"log/slog"

	"github.com/fluxbank/demo-bank/internal/directory"
	"github.com/fluxbank/demo-bank/internal/service"
)

// Handler serves all API endpoints over the injected services
type Handler struct {
	ledgerService  service.Ledger
	accountService service.Accounts
	userService    service.Users
	cardService    service.Cards
	adminService   service.Admin
	dir            *directory.Directory
	logger         *slog.Logger
}

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	ledgerService service.Ledger,
	accountService service.Accounts,
	userService service.Users,
	cardService service.Cards,
	adminService service.Admin,
	dir *directory.Directory,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		ledgerService:  ledgerService,
		accountService: accountService,
		userService:    userService,
		cardService:    cardService,
		adminService:   adminService,
		dir:            dir,
		logger:         logger,
	}
}
