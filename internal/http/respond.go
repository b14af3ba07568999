package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/palstyle/storefront/internal/automation"
	"github.com/palstyle/storefront/internal/bridge"
	"github.com/palstyle/storefront/internal/catalog"
	"github.com/palstyle/storefront/internal/checkout"
	"github.com/palstyle/storefront/internal/orders"
	"github.com/palstyle/storefront/internal/prefs"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps sentinel service errors onto HTTP statuses.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, orders.ErrOrderNotFound),
		errors.Is(err, checkout.ErrSessionNotFound),
		errors.Is(err, automation.ErrRuleNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, catalog.ErrDuplicateProduct):
		respondError(w, http.StatusConflict, "already_exists", err.Error())
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.IllegalTransitionError),
		errors.Is(err, bridge.ErrSyncInProgress):
		respondError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, catalog.ErrInvalidProduct),
		errors.Is(err, checkout.ErrShippingIncomplete),
		errors.Is(err, prefs.ErrInvalidLanguage),
		errors.Is(err, prefs.ErrInvalidCurrency),
		errors.Is(err, prefs.ErrInvalidView):
		respondError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
