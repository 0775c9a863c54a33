package wire

import (
	"furniture-store/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireContact(r chi.Router, contactHandler *adaptor.ContactHandler) {
	r.Post("/api/email/send-contact", contactHandler.Send)
}
