package adaptor

import (
	"net/http"

	"furniture-store/internal/dto/request"
	"furniture-store/internal/usecase"
	"furniture-store/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /api/users/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, h.log, err, "get_profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved", profile)
}

// UpdateProfile handles PUT /api/users/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	var req request.UpdateProfileRequest
	if err := decodeBody(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, r, h.log, err, "update_profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated", profile)
}

// Deactivate handles DELETE /api/users/profile
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	if err := h.service.Deactivate(r.Context(), userID); err != nil {
		handleServiceError(w, r, h.log, err, "deactivate")
		return
	}

	utils.ResponseSuccess(w, "Account deactivated", nil)
}
