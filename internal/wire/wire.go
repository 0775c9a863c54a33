package wire

import (
	"context"
	"net/http"
	"time"

	"furniture-store/internal/adaptor"
	"furniture-store/internal/data/repository"
	"furniture-store/internal/usecase"
	"furniture-store/pkg/mailer"
	"furniture-store/pkg/middleware"
	"furniture-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	requestTimeout = 30 * time.Second
	healthTimeout  = 2 * time.Second
)

// App holds the assembled router and the services that need lifecycle hooks.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
	Tokens  *utils.TokenManager
	repo    *repository.Repository
	config  *utils.Config
	log     *zap.Logger
}

// Wiring builds every dependency from the repository bundle and config.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	return WiringWith(repo, mailer.New(config.Email, logger), config, logger)
}

// WiringWith is Wiring with an explicit mailer.
func WiringWith(repo *repository.Repository, mail mailer.Mailer, config *utils.Config, logger *zap.Logger) *App {
	tokens := utils.NewTokenManager(config.JWT)
	service := usecase.NewService(repo, tokens, mail, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, service, repo, config, logger),
		Service: service,
		Tokens:  tokens,
		repo:    repo,
		config:  config,
		log:     logger,
	}
}

// StartWorkers launches background jobs that stop with ctx.
func (a *App) StartWorkers(ctx context.Context) {
	if a.config.Auth.RevocationEnabled {
		usecase.StartRevocationPurge(ctx, a.repo.Revocation, a.config.Auth.PurgeInterval, a.log)
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))
	r.Use(chimw.Timeout(requestTimeout))

	auth := middleware.Authenticate(service.Gate, logger)

	wireAuth(r, handler.Auth, auth)
	wireUser(r, handler.User, auth)
	wireCart(r, handler.Cart, auth)
	wireContact(r, handler.Contact)

	r.Get("/health", healthHandler(repo.Health, logger))

	return r
}

func healthHandler(health repository.HealthChecker, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := health.Ping(ctx); err != nil {
			utils.LoggerFromContext(r.Context(), logger).Warn("Health check failed", zap.Error(err))
			utils.ResponseError(w, http.StatusServiceUnavailable, "storage unavailable", nil)
			return
		}
		utils.ResponseSuccess(w, "OK", map[string]string{"status": "ok"})
	}
}
