package http

import (
	"encoding/json"
	"net/http"

	"github.com/palstyle/storefront/internal/prefs"
)

type PrefsHandler struct {
	store *prefs.Store
}

func NewPrefsHandler(store *prefs.Store) *PrefsHandler {
	return &PrefsHandler{store: store}
}

func (h *PrefsHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Get(getSessionID(r.Context())))
}

func (h *PrefsHandler) ToggleCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.ToggleCart(getSessionID(r.Context())))
}

func (h *PrefsHandler) ToggleMenu(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.ToggleMenu(getSessionID(r.Context())))
}

func (h *PrefsHandler) ToggleAdmin(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.ToggleAdmin(getSessionID(r.Context())))
}

func (h *PrefsHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.ToggleTheme(getSessionID(r.Context())))
}

type SetLanguageDTO struct {
	Language string `json:"language"`
}

func (h *PrefsHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req SetLanguageDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	state, err := h.store.SetLanguage(getSessionID(r.Context()), prefs.Language(req.Language))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

type SetCurrencyDTO struct {
	Currency string `json:"currency"`
}

func (h *PrefsHandler) SetCurrency(w http.ResponseWriter, r *http.Request) {
	var req SetCurrencyDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	state, err := h.store.SetCurrency(getSessionID(r.Context()), prefs.Currency(req.Currency))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

type SetViewDTO struct {
	View string `json:"view"`
}

func (h *PrefsHandler) SetDashboardView(w http.ResponseWriter, r *http.Request) {
	var req SetViewDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	state, err := h.store.SetDashboardView(getSessionID(r.Context()), prefs.DashboardView(req.View))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

type SetHeroVideoDTO struct {
	URL string `json:"url"`
}

func (h *PrefsHandler) SetHeroVideo(w http.ResponseWriter, r *http.Request) {
	var req SetHeroVideoDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	respondJSON(w, http.StatusOK, h.store.SetHeroVideoURL(getSessionID(r.Context()), req.URL))
}
