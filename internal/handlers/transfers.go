package handlers

import (
	"net/http"

	"github.com/fluxbank/demo-bank/internal/service"
	"github.com/shopspring/decimal"
)

type transferRequest struct {
	Email           string          `json:"email"`
	FromAccountID   string          `json:"fromAccountId"`
	ToAccountNumber string          `json:"toAccountNumber"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
}

type transferResponse struct {
	Debit  any `json:"debit"`
	Credit any `json:"credit"`
}

// CreateTransfer handles POST /api/v1/transfers
func (h *Handler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.ledgerService.Transfer(r.Context(), service.TransferParams{
		UserEmail:       req.Email,
		FromAccountID:   req.FromAccountID,
		ToAccountNumber: req.ToAccountNumber,
		Amount:          req.Amount,
		Description:     req.Description,
		Category:        req.Category,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, transferResponse{Debit: result.Debit, Credit: result.Credit})
}

type quickTransferRequest struct {
	Email         string          `json:"email"`
	FromAccountID string          `json:"fromAccountId"`
	ToAccountID   string          `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
}

// CreateQuickTransfer handles POST /api/v1/transfers/quick, moving money
// between two accounts owned by the same user.
func (h *Handler) CreateQuickTransfer(w http.ResponseWriter, r *http.Request) {
	var req quickTransferRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.ledgerService.QuickTransfer(r.Context(), req.Email, req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, transferResponse{Debit: result.Debit, Credit: result.Credit})
}
