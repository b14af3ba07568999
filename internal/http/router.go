package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/palstyle/storefront/internal/prefs"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Products *ProductHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Admin    *AdminHandler
	Prefs    *PrefsHandler

	RequestTimeout time.Duration
}

// NewRouter assembles the storefront's HTTP surface.
func NewRouter(h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(h.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.List)
			r.Post("/", h.Products.Create)
			r.Post("/describe", h.Products.Describe)
			r.Get("/{id}", h.Products.Get)
			r.Put("/{id}", h.Products.Update)
			r.Delete("/{id}", h.Products.Delete)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Delete("/", h.Cart.ClearCart)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{product_id}", h.Cart.AdjustItem)
			r.Delete("/items/{product_id}", h.Cart.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", h.Checkout.Start)
			r.Get("/{id}", h.Checkout.Get)
			r.Post("/{id}/shipping", h.Checkout.SubmitShipping)
			r.Post("/{id}/back", h.Checkout.Back)
			r.Post("/{id}/pay", h.Checkout.Pay)
		})

		r.Route("/prefs", func(r chi.Router) {
			r.Get("/", h.Prefs.Get)
			r.Post("/cart/toggle", h.Prefs.ToggleCart)
			r.Post("/menu/toggle", h.Prefs.ToggleMenu)
			r.Post("/admin/toggle", h.Prefs.ToggleAdmin)
			r.Post("/theme/toggle", h.Prefs.ToggleTheme)
			r.Put("/language", h.Prefs.SetLanguage)
			r.Put("/currency", h.Prefs.SetCurrency)
			r.Put("/view", h.Prefs.SetDashboardView)
			r.Put("/hero-video", h.Prefs.SetHeroVideo)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/catalog/import", h.Products.ImportCSV)
			r.Get("/catalog/export", h.Products.ExportCSV)
			r.Post("/sync", h.Admin.Sync)
			r.Get("/sync/status", h.Admin.SyncStatus)
			r.Get("/orders", h.Admin.Orders)
			r.Get("/customers", h.Admin.Customers)
			r.Route("/automation", func(r chi.Router) {
				r.Get("/rules", h.Admin.Rules)
				r.Get("/logs", h.Admin.Logs)
				r.Post("/rules/{id}/toggle", h.Admin.ToggleRule)
				r.Post("/messages", h.Admin.SimulateMessage)
			})
			r.Post("/video", h.Admin.GenerateVideo)
			r.Get("/brand-story", h.Admin.BrandStory)
		})
	})

	return r
}

// PrefsCurrency adapts the preference store to the checkout handler's
// currency lookup.
type PrefsCurrency struct {
	Store *prefs.Store
}

func (p PrefsCurrency) Currency(sessionID string) string {
	return string(p.Store.Get(sessionID).Currency)
}
