package usecase

import (
	"furniture-store/internal/data/repository"
	"furniture-store/pkg/mailer"
	"furniture-store/pkg/utils"

	"go.uber.org/zap"
)

// Service groups the use cases the HTTP layer depends on.
type Service struct {
	Auth    AuthService
	User    UserService
	Cart    CartService
	Contact ContactService
	Gate    *AccessGate
}

func NewService(
	repo *repository.Repository,
	tokens *utils.TokenManager,
	mail mailer.Mailer,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	revocations := repo.Revocation
	if !config.Auth.RevocationEnabled {
		revocations = nil
	}

	return &Service{
		Auth:    NewAuthService(repo.User, revocations, tokens, log),
		User:    NewUserService(repo.User, log),
		Cart:    NewCartService(repo.Cart, repo.CartItem, log),
		Contact: NewContactService(mail, config.Email, log),
		Gate:    NewAccessGate(tokens, repo.User, revocations, log),
	}
}
