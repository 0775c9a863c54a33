package wire

import (
	"net/http"

	"furniture-store/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireCart configures cart routes. Every route acts on the caller's own cart.
func wireCart(r chi.Router, cartHandler *adaptor.CartHandler, auth func(http.Handler) http.Handler) {
	r.With(auth).Route("/api/cart", func(r chi.Router) {
		r.Get("/", cartHandler.GetCart)
		r.Delete("/clear", cartHandler.ClearCart)
		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{itemId}", cartHandler.UpdateItem)
		r.Delete("/items/{itemId}", cartHandler.RemoveItem)
	})
}
