package handlers

import (
	"net/http"

	"github.com/fluxbank/demo-bank/internal/models"
)

type createAccountRequest struct {
	Email string             `json:"email"`
	Type  models.AccountType `json:"type"`
}

// CreateAccount handles POST /api/v1/accounts
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := h.accountService.CreateAccount(r.Context(), req.Email, req.Type)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, account)
}

// ListAccounts handles GET /api/v1/accounts
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccounts(r.Context(), email)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, accounts)
}

// VerifyRecipient handles GET /api/v1/recipients/{accountNumber}
func (h *Handler) VerifyRecipient(w http.ResponseWriter, r *http.Request) {
	info, err := h.accountService.VerifyRecipient(r.Context(), r.PathValue("accountNumber"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// ListUserTransactions handles GET /api/v1/transactions
func (h *Handler) ListUserTransactions(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	transactions, err := h.accountService.UserTransactions(r.Context(), email)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}

// ListAccountTransactions handles GET /api/v1/accounts/{id}/transactions
func (h *Handler) ListAccountTransactions(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	transactions, err := h.accountService.AccountTransactions(r.Context(), email, r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}
