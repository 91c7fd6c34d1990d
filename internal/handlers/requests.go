package handlers

import (
	"net/http"

	"github.com/fluxbank/demo-bank/internal/service"
	"github.com/shopspring/decimal"
)

type moneyRequestRequest struct {
	Email               string          `json:"email"`
	RequesterAccountID  string          `json:"requesterAccountId"`
	SenderAccountNumber string          `json:"senderAccountNumber"`
	Amount              decimal.Decimal `json:"amount"`
	Description         string          `json:"description"`
}

// CreateMoneyRequest handles POST /api/v1/money-requests
func (h *Handler) CreateMoneyRequest(w http.ResponseWriter, r *http.Request) {
	var req moneyRequestRequest
	if !decodeBody(w, r, &req) {
		return
	}

	request, err := h.ledgerService.RequestMoney(r.Context(), service.RequestMoneyParams{
		UserEmail:           req.Email,
		RequesterAccountID:  req.RequesterAccountID,
		SenderAccountNumber: req.SenderAccountNumber,
		Amount:              req.Amount,
		Description:         req.Description,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, request)
}

// ListMoneyRequests handles GET /api/v1/money-requests, returning pending
// requests involving the caller's accounts.
func (h *Handler) ListMoneyRequests(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	requests, err := h.ledgerService.PendingRequestsFor(r.Context(), email)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

type requestDecision struct {
	Email string `json:"email"`
}

// ApproveMoneyRequest handles POST /api/v1/money-requests/{id}/approve
func (h *Handler) ApproveMoneyRequest(w http.ResponseWriter, r *http.Request) {
	var req requestDecision
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.ledgerService.ApproveRequest(r.Context(), req.Email, r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transferResponse{Debit: result.Debit, Credit: result.Credit})
}

// RejectMoneyRequest handles POST /api/v1/money-requests/{id}/reject
func (h *Handler) RejectMoneyRequest(w http.ResponseWriter, r *http.Request) {
	var req requestDecision
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.ledgerService.RejectRequest(r.Context(), req.Email, r.PathValue("id")); err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}
