package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prakritistore/cart-service/internal/api/handlers"
	"github.com/prakritistore/cart-service/internal/cart"
	"github.com/prakritistore/cart-service/internal/checkout"
	"github.com/prakritistore/cart-service/internal/newsletter"
	"github.com/prakritistore/cart-service/internal/prefs"
)

// Deps collects everything the HTTP surface binds to. All screens and
// clients go through these shared services; none keeps its own cart logic.
type Deps struct {
	Cart       *cart.Store
	Checkout   *checkout.Service
	Coupons    *checkout.CouponTable
	Newsletter *newsletter.Service
	Prefs      *prefs.Manager
}

// NewRouter builds the HTTP router for the cart-service.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	cartHandler := handlers.NewCartHandler(deps.Cart)
	checkoutHandler := handlers.NewCheckoutHandler(deps.Checkout, deps.Coupons)
	miscHandler := handlers.NewMiscHandler(deps.Newsletter, deps.Prefs)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)
		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{id}", cartHandler.UpdateItem)
		r.Delete("/items/{id}", cartHandler.RemoveItem)
	})

	r.Route("/coupons", func(r chi.Router) {
		r.Get("/applicable", checkoutHandler.ApplicableCoupons)
		r.Post("/validate", checkoutHandler.ValidateCoupon)
	})

	r.Route("/checkout", func(r chi.Router) {
		r.Get("/quote", checkoutHandler.Quote)
		r.Post("/", checkoutHandler.PlaceOrder)
	})

	r.Get("/orders", checkoutHandler.ListOrders)

	r.Post("/newsletter/subscribe", miscHandler.Subscribe)

	r.Route("/preferences", func(r chi.Router) {
		r.Get("/{key}", miscHandler.GetPreference)
		r.Put("/{key}", miscHandler.SetPreference)
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
