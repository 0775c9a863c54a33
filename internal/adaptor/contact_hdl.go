package adaptor

import (
	"net/http"

	"furniture-store/internal/dto/request"
	"furniture-store/internal/usecase"
	"furniture-store/pkg/utils"

	"go.uber.org/zap"
)

type ContactHandler struct {
	service usecase.ContactService
	log     *zap.Logger
}

func NewContactHandler(service usecase.ContactService, log *zap.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		log:     log.With(zap.String("handler", "contact")),
	}
}

// Send handles POST /api/email/send-contact
func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req request.ContactRequest
	if err := decodeBody(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	if err := h.service.Send(r.Context(), &req); err != nil {
		handleServiceError(w, r, h.log, err, "send_contact")
		return
	}

	utils.ResponseAccepted(w, "Message received, we will get back to you soon")
}
