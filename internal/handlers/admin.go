package handlers

import (
	"net/http"
	"strconv"

	"github.com/fluxbank/demo-bank/internal/models"
	"github.com/fluxbank/demo-bank/internal/service"
	"github.com/shopspring/decimal"
)

// GetBankStats handles GET /api/v1/admin/stats
func (h *Handler) GetBankStats(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	stats, err := h.adminService.Stats(r.Context(), email)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

type adminAccountUpdateRequest struct {
	Email   string              `json:"email"`
	Balance *decimal.Decimal    `json:"balance,omitempty"`
	Type    *models.AccountType `json:"type,omitempty"`
}

// UpdateAccount handles PATCH /api/v1/admin/accounts/{id}
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req adminAccountUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := h.adminService.UpdateAccount(r.Context(), req.Email, r.PathValue("id"), service.AccountUpdate{
		Balance: req.Balance,
		Type:    req.Type,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

type accountStatusRequest struct {
	Email  string               `json:"email"`
	Status models.AccountStatus `json:"status"`
}

// SetAccountStatus handles POST /api/v1/admin/accounts/{id}/block. The body
// carries the target status so the same endpoint can unblock.
func (h *Handler) SetAccountStatus(w http.ResponseWriter, r *http.Request) {
	var req accountStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := h.adminService.SetAccountStatus(r.Context(), req.Email, r.PathValue("id"), req.Status)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// DeleteAccount handles DELETE /api/v1/admin/accounts/{id}
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	if err := h.adminService.DeleteAccount(r.Context(), email, r.PathValue("id")); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetBankLogs handles GET /api/v1/admin/logs with optional type and limit
// query parameters.
func (h *Handler) GetBankLogs(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	logType := models.LogType(r.URL.Query().Get("type"))

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			writeErrorCode(w, http.StatusBadRequest, service.ErrCodeInvalidInput, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	logs, err := h.adminService.Logs(r.Context(), email, logType, limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, logs)
}

// ListPendingCardApplications handles GET /api/v1/admin/card-applications
func (h *Handler) ListPendingCardApplications(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	applications, err := h.adminService.PendingCardApplications(r.Context(), email)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, applications)
}

type reviewRequest struct {
	Email string `json:"email"`
}

// ApproveCardApplication handles POST /api/v1/admin/card-applications/{id}/approve
func (h *Handler) ApproveCardApplication(w http.ResponseWriter, r *http.Request) {
	h.reviewCardApplication(w, r, true)
}

// RejectCardApplication handles POST /api/v1/admin/card-applications/{id}/reject
func (h *Handler) RejectCardApplication(w http.ResponseWriter, r *http.Request) {
	h.reviewCardApplication(w, r, false)
}

func (h *Handler) reviewCardApplication(w http.ResponseWriter, r *http.Request, approve bool) {
	var req reviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	application, err := h.cardService.ReviewApplication(r.Context(), req.Email, r.PathValue("id"), approve)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, application)
}
