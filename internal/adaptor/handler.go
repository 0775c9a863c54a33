package adaptor

import (
	"furniture-store/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Cart    *CartHandler
	Contact *ContactHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Cart:    NewCartHandler(service.Cart, log),
		Contact: NewContactHandler(service.Contact, log),
	}
}
