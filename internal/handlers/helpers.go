package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fluxbank/demo-bank/internal/service"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Best effort response writing
	json.NewEncoder(w).Encode(body)
}

func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeServiceError maps a service error to its HTTP status and body. Errors
// that are not ServiceError values are logged and reported as internal.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	svcErr := extractServiceError(err)
	if svcErr == nil {
		h.logger.Error("unexpected service error", "error", err)
		writeErrorCode(w, http.StatusInternalServerError, service.ErrCodeInternalError, "internal error")
		return
	}
	writeErrorCode(w, statusForCode(svcErr.Code), svcErr.Code, svcErr.Message)
}

func statusForCode(code string) int {
	switch code {
	case service.ErrCodeInvalidAccounts,
		service.ErrCodeInvalidAmount,
		service.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case service.ErrCodeInvalidCredentials,
		service.ErrCodeInvalidCode:
		return http.StatusUnauthorized
	case service.ErrCodeInsufficientFunds:
		return http.StatusPaymentRequired
	case service.ErrCodeAccountBlocked,
		service.ErrCodeUnauthorized:
		return http.StatusForbidden
	case service.ErrCodeNotFound:
		return http.StatusNotFound
	case service.ErrCodeAlreadyExists,
		service.ErrCodeRequestNotPending:
		return http.StatusConflict
	case service.ErrCodeTooManyAttempts:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody parses a JSON request body, writing a 400 on failure
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorCode(w, http.StatusBadRequest, service.ErrCodeInvalidInput, "invalid request body")
		return false
	}
	return true
}

// callerEmail identifies the acting user from the email query parameter.
// There is no real session layer; this is a demo surface.
func callerEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeErrorCode(w, http.StatusBadRequest, service.ErrCodeInvalidInput, "email query parameter is required")
		return "", false
	}
	return email, true
}

func extractServiceError(err error) *service.ServiceError {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return nil
}
