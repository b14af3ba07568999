package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/palstyle/storefront/internal/domain"
	"github.com/palstyle/storefront/internal/prefs"
)

// CartLedger is the slice of the cart service the HTTP layer drives.
type CartLedger interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Add(ctx context.Context, userID string, product domain.Product, size domain.SizeVariant) error
	Adjust(ctx context.Context, userID string, product domain.Product, size domain.SizeVariant, delta int) error
	Remove(ctx context.Context, userID string, key domain.LineKey) error
	Clear(ctx context.Context, userID string) error
}

// ProductGetter resolves the product snapshot a cart line is built from.
type ProductGetter interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type CartHandler struct {
	ledger  CartLedger
	catalog ProductGetter
	prefs   PreferenceReader
	timeout time.Duration
}

func NewCartHandler(ledger CartLedger, catalog ProductGetter, prefs PreferenceReader, timeout time.Duration) *CartHandler {
	return &CartHandler{
		ledger:  ledger,
		catalog: catalog,
		prefs:   prefs,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
}

type AdjustItemRequestDTO struct {
	Size  string `json:"size,omitempty"`
	Delta int    `json:"delta"`
}

type CartResponseDTO struct {
	Cart         *domain.Cart `json:"cart"`
	Total        float64      `json:"total"`
	TotalDisplay string       `json:"total_display"`
	ItemCount    int          `json:"item_count"`
}

func (h *CartHandler) cartResponse(sessionID string, cart *domain.Cart) CartResponseDTO {
	currency := prefs.Currency(h.prefs.Currency(sessionID))
	return CartResponseDTO{
		Cart:         cart,
		Total:        cart.Total(),
		TotalDisplay: currency.Format(cart.Total()),
		ItemCount:    cart.ItemCount(),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	cart, err := h.ledger.Get(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.cartResponse(sessionID, cart))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must not be empty")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := h.catalog.Get(ctx, req.ProductID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sessionID := getSessionID(r.Context())
	size := domain.SizeVariant(req.Size)
	for i := 0; i < req.Quantity; i++ {
		if err := h.ledger.Add(ctx, sessionID, *product, size); err != nil {
			handleServiceError(w, err)
			return
		}
	}

	cart, err := h.ledger.Get(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.cartResponse(sessionID, cart))
}

// AdjustItem applies the cart drawer's plus/minus control.
func (h *CartHandler) AdjustItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must not be empty")
		return
	}

	var req AdjustItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Delta != 1 && req.Delta != -1 {
		respondError(w, http.StatusBadRequest, "invalid_delta", "delta must be +1 or -1")
		return
	}

	product, err := h.catalog.Get(ctx, productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	sessionID := getSessionID(r.Context())
	if err := h.ledger.Adjust(ctx, sessionID, *product, domain.SizeVariant(req.Size), req.Delta); err != nil {
		handleServiceError(w, err)
		return
	}

	cart, err := h.ledger.Get(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.cartResponse(sessionID, cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must not be empty")
		return
	}

	size := domain.SizeVariant(r.URL.Query().Get("size"))
	if !size.Valid() {
		size = domain.DefaultSize
	}

	sessionID := getSessionID(r.Context())
	key := domain.LineKey{ProductID: productID, Size: size}
	if err := h.ledger.Remove(ctx, sessionID, key); err != nil {
		handleServiceError(w, err)
		return
	}

	cart, err := h.ledger.Get(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.cartResponse(sessionID, cart))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if err := h.ledger.Clear(ctx, sessionID); err != nil {
		handleServiceError(w, err)
		return
	}

	cart, err := h.ledger.Get(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.cartResponse(sessionID, cart))
}
