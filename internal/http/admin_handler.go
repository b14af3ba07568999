package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/palstyle/storefront/internal/bridge"
	"github.com/palstyle/storefront/internal/domain"
)

// ChannelSyncer runs the marketplace synchronization round.
type ChannelSyncer interface {
	Sync(ctx context.Context) (*bridge.SyncResult, error)
	Syncing() bool
	Orders() []domain.Order
	Customers() []domain.Customer
	LastSync() time.Time
}

// AutomationAdmin exposes the automation engine to the dashboard.
type AutomationAdmin interface {
	Rules() []domain.AutomationRule
	Logs() []domain.AutomationLog
	ToggleRule(id string) (domain.AutomationRule, error)
	ProcessIncomingMessage(sender, text string) int
}

// VideoDirector produces the hero video for the storefront landing page.
type VideoDirector interface {
	GenerateVideo(ctx context.Context, prompt string) (string, error)
	BrandStory(ctx context.Context) string
}

type AdminHandler struct {
	syncer     ChannelSyncer
	automation AutomationAdmin
	director   VideoDirector
	timeout    time.Duration
}

func NewAdminHandler(syncer ChannelSyncer, automation AutomationAdmin, director VideoDirector, timeout time.Duration) *AdminHandler {
	return &AdminHandler{
		syncer:     syncer,
		automation: automation,
		director:   director,
		timeout:    timeout,
	}
}

// Sync runs a full channel synchronization. The call is synchronous; the
// dashboard polls Status for the spinner instead.
func (h *AdminHandler) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.syncer.Sync(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

type SyncStatusDTO struct {
	Syncing  bool      `json:"syncing"`
	LastSync time.Time `json:"last_sync,omitzero"`
}

func (h *AdminHandler) SyncStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SyncStatusDTO{
		Syncing:  h.syncer.Syncing(),
		LastSync: h.syncer.LastSync(),
	})
}

func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	orders := h.syncer.Orders()
	if platform := r.URL.Query().Get("platform"); platform != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if o.Platform == domain.Platform(platform) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *AdminHandler) Customers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.syncer.Customers())
}

func (h *AdminHandler) Rules(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.automation.Rules())
}

func (h *AdminHandler) Logs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.automation.Logs())
}

func (h *AdminHandler) ToggleRule(w http.ResponseWriter, r *http.Request) {
	rule, err := h.automation.ToggleRule(chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rule)
}

type IncomingMessageDTO struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// SimulateMessage feeds a fake inbound customer message through the
// incoming-message automation rules.
func (h *AdminHandler) SimulateMessage(w http.ResponseWriter, r *http.Request) {
	var req IncomingMessageDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "invalid_text", "text must not be empty")
		return
	}

	fired := h.automation.ProcessIncomingMessage(req.Sender, req.Text)
	respondJSON(w, http.StatusOK, map[string]int{"rules_fired": fired})
}

type GenerateVideoRequestDTO struct {
	Prompt string `json:"prompt"`
}

type GenerateVideoResponseDTO struct {
	URL string `json:"url"`
}

// GenerateVideo runs a hero video generation job to completion. Generation
// can take minutes; the request context bounds it.
func (h *AdminHandler) GenerateVideo(w http.ResponseWriter, r *http.Request) {
	var req GenerateVideoRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Prompt == "" {
		respondError(w, http.StatusBadRequest, "invalid_prompt", "prompt must not be empty")
		return
	}

	url, err := h.director.GenerateVideo(r.Context(), req.Prompt)
	if err != nil {
		respondError(w, http.StatusBadGateway, "generation_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, GenerateVideoResponseDTO{URL: url})
}

func (h *AdminHandler) BrandStory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	respondJSON(w, http.StatusOK, map[string]string{"story": h.director.BrandStory(ctx)})
}
