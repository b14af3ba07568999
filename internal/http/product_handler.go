package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/palstyle/storefront/internal/catalog"
	"github.com/palstyle/storefront/internal/domain"
)

// ProductCatalog is the catalog surface the HTTP layer exposes.
type ProductCatalog interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Add(ctx context.Context, product domain.Product) error
	Update(ctx context.Context, id string, update domain.ProductUpdate) error
	Delete(ctx context.Context, id string) error
	ImportCSV(ctx context.Context, r io.Reader) (int, []catalog.RowError, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

// Copywriter generates product copy with a built-in fallback.
type Copywriter interface {
	Describe(ctx context.Context, name, category string) string
}

type ProductHandler struct {
	catalog    ProductCatalog
	copywriter Copywriter
	timeout    time.Duration
}

func NewProductHandler(catalog ProductCatalog, copywriter Copywriter, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog:    catalog,
		copywriter: copywriter,
		timeout:    timeout,
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.List(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.catalog.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.catalog.Add(ctx, product); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var update domain.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.catalog.Update(ctx, id, update); err != nil {
		handleServiceError(w, err)
		return
	}

	product, err := h.catalog.Get(ctx, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.catalog.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ImportResultDTO struct {
	Imported int               `json:"imported"`
	Skipped  []catalog.RowError `json:"skipped,omitempty"`
}

// ImportCSV ingests a commerce-platform CSV export from the request body.
// Rows that fail to parse are reported per line, not dropped silently.
func (h *ProductHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	count, rowErrs, err := h.catalog.ImportCSV(ctx, r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_csv", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, ImportResultDTO{Imported: count, Skipped: rowErrs})
}

func (h *ProductHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)
	if err := h.catalog.ExportCSV(ctx, w); err != nil {
		// Header already sent; nothing left to do but log via the mapper.
		handleServiceError(w, err)
	}
}

type DescribeRequestDTO struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type DescribeResponseDTO struct {
	Description string `json:"description"`
}

// Describe generates marketing copy for a prospective product.
func (h *ProductHandler) Describe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req DescribeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_name", "name must not be empty")
		return
	}

	respondJSON(w, http.StatusOK, DescribeResponseDTO{
		Description: h.copywriter.Describe(ctx, req.Name, req.Category),
	})
}
