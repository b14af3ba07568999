package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/palstyle/storefront/internal/checkout"
	"github.com/palstyle/storefront/internal/domain"
)

// CheckoutFlow is the checkout surface the HTTP layer drives.
type CheckoutFlow interface {
	Start(ctx context.Context, userID, currency string) (*domain.CheckoutSession, error)
	Get(ctx context.Context, sessionID string) (*domain.CheckoutSession, error)
	SubmitShipping(ctx context.Context, sessionID string, info domain.ShippingInfo) (*domain.CheckoutSession, error)
	Back(ctx context.Context, sessionID string) (*domain.CheckoutSession, error)
	Pay(ctx context.Context, sessionID string, card checkout.PaymentCard) (*domain.CheckoutSession, error)
}

// PreferenceReader supplies the session's display currency.
type PreferenceReader interface {
	Currency(sessionID string) string
}

type CheckoutHandler struct {
	flow    CheckoutFlow
	prefs   PreferenceReader
	timeout time.Duration
}

func NewCheckoutHandler(flow CheckoutFlow, prefs PreferenceReader, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		flow:    flow,
		prefs:   prefs,
		timeout: timeout,
	}
}

func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	currency := "USD"
	if h.prefs != nil {
		currency = h.prefs.Currency(sessionID)
	}

	session, err := h.flow.Start(ctx, sessionID, currency)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	session, err := h.flow.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (h *CheckoutHandler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var info domain.ShippingInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session, err := h.flow.SubmitShipping(ctx, chi.URLParam(r, "id"), info)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	session, err := h.flow.Back(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

type PayRequestDTO struct {
	Card checkout.PaymentCard `json:"card"`
}

func (h *CheckoutHandler) Pay(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req PayRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Card.Number == "" {
		respondError(w, http.StatusBadRequest, "invalid_card", "card number must not be empty")
		return
	}

	session, err := h.flow.Pay(ctx, chi.URLParam(r, "id"), req.Card)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}
