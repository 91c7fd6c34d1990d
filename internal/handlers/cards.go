package handlers

import (
	"net/http"

	"github.com/fluxbank/demo-bank/internal/models"
	"github.com/fluxbank/demo-bank/internal/service"
	"github.com/shopspring/decimal"
)

type cardApplicationRequest struct {
	Email         string          `json:"email"`
	Type          models.CardTier `json:"type"`
	CardType      models.CardKind `json:"cardType"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome"`
	Employment    string          `json:"employment"`
	NameOnCard    string          `json:"nameOnCard"`
}

// CreateCardApplication handles POST /api/v1/card-applications
func (h *Handler) CreateCardApplication(w http.ResponseWriter, r *http.Request) {
	var req cardApplicationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	application, err := h.cardService.Apply(r.Context(), service.CardApplicationParams{
		UserEmail:     req.Email,
		Type:          req.Type,
		CardType:      req.CardType,
		MonthlyIncome: req.MonthlyIncome,
		Employment:    req.Employment,
		NameOnCard:    req.NameOnCard,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, application)
}

// ListCards handles GET /api/v1/cards
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	cards, err := h.cardService.ListCards(r.Context(), email)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cards)
}

// ListCardApplications handles GET /api/v1/card-applications
func (h *Handler) ListCardApplications(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	applications, err := h.cardService.ListApplications(r.Context(), email)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, applications)
}

type cardStatusRequest struct {
	Email  string            `json:"email"`
	Status models.CardStatus `json:"status"`
}

// UpdateCardStatus handles PATCH /api/v1/cards/{id}, toggling a card between
// active and inactive.
func (h *Handler) UpdateCardStatus(w http.ResponseWriter, r *http.Request) {
	var req cardStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	card, err := h.cardService.SetCardStatus(r.Context(), req.Email, r.PathValue("id"), req.Status)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, card)
}
