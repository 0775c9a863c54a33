package wire

import (
	"net/http"

	"furniture-store/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures the caller's own profile routes
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, auth func(http.Handler) http.Handler) {
	r.With(auth).Route("/api/users/profile", func(r chi.Router) {
		r.Get("/", userHandler.GetProfile)
		r.Put("/", userHandler.UpdateProfile)
		r.Delete("/", userHandler.Deactivate)
	})
}
