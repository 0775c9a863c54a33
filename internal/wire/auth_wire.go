package wire

import (
	"net/http"

	"furniture-store/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, auth func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/users/register", authHandler.Register)
	r.Post("/api/users/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Post("/api/users/logout", authHandler.Logout)
}
