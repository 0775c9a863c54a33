package adaptor

import (
	"net/http"

	"furniture-store/internal/dto/request"
	"furniture-store/internal/usecase"
	"furniture-store/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/users/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := decodeBody(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful", user)
}

// Login handles POST /api/users/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.log, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// Logout handles POST /api/users/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), principal); err != nil {
		handleServiceError(w, r, h.log, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}
