package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterDeps holds the handlers the router mounts. Checkout and webhook
// routes are always mounted: an unconfigured deployment must answer 500
// (checkout) and 401 (webhook) on them, never 404. Nil content and cart
// handlers leave their routes unmounted.
type RouterDeps struct {
	Content  *ContentHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Webhook  *WebhookHandler
}

func NewRouter(deps RouterDeps) http.Handler {
	if deps.Checkout == nil {
		deps.Checkout = NewCheckoutHandler(nil, "")
	}
	if deps.Webhook == nil {
		deps.Webhook = NewWebhookHandler(nil, "")
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		if deps.Content != nil {
			r.Get("/products", deps.Content.GetProducts)
			r.Get("/locations", deps.Content.GetLocations)
			r.Get("/testimonials", deps.Content.GetTestimonials)
			r.Get("/site-settings", deps.Content.GetSiteSettings)
			r.Get("/about-us", deps.Content.GetAboutUs)
		}

		if deps.Cart != nil {
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", deps.Cart.GetCart)
				r.Delete("/", deps.Cart.ClearCart)
				r.Post("/items", deps.Cart.AddItem)
				r.Put("/items/{product_id}", deps.Cart.UpdateQuantity)
				r.Delete("/items/{product_id}", deps.Cart.RemoveItem)
				r.Post("/open", deps.Cart.OpenCart)
				r.Post("/close", deps.Cart.CloseCart)
			})
		}

		r.Post("/checkout", deps.Checkout.CreateSession)
		r.Get("/checkout/confirm", deps.Checkout.ConfirmSession)

		r.Post("/content-webhook", deps.Webhook.HandleContentWebhook)
	})

	return r
}
