package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"furniture-store/internal/data/memstore"
	"furniture-store/internal/data/repository"
	"furniture-store/internal/dto/request"
	"furniture-store/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type testEnv struct {
	store  *memstore.Store
	repo   *repository.Repository
	tokens *utils.TokenManager
	auth   AuthService
	users  UserService
	cart   CartService
	gate   *AccessGate
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := zaptest.NewLogger(t)
	store := memstore.New()
	repo := store.Repository()
	tokens := utils.NewTokenManager(utils.JWTConfig{
		Secret:      strings.Repeat("k", 32),
		ExpiryHours: 1,
		Issuer:      "furniture-store",
	})

	return &testEnv{
		store:  store,
		repo:   repo,
		tokens: tokens,
		auth:   NewAuthService(repo.User, repo.Revocation, tokens, log),
		users:  NewUserService(repo.User, log),
		cart:   NewCartService(repo.Cart, repo.CartItem, log),
		gate:   NewAccessGate(tokens, repo.User, repo.Revocation, log),
	}
}

// register creates an account and returns its id.
func (e *testEnv) register(t *testing.T, username, email string) uuid.UUID {
	t.Helper()

	user, err := e.auth.Register(context.Background(), registerRequest(username, email))
	if err != nil {
		t.Fatalf("Register(%s) error = %v", username, err)
	}
	return uuid.MustParse(user.ID)
}

// login returns an Authorization header value for username.
func (e *testEnv) login(t *testing.T, username string) string {
	t.Helper()

	resp, err := e.auth.Login(context.Background(), &request.LoginRequest{
		Username: username,
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login(%s) error = %v", username, err)
	}
	return "Bearer " + resp.Token
}

// registerRequest fills every required registration field.
func registerRequest(username, email string) *request.RegisterRequest {
	return &request.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "secret123",
		Phone:    "555-0100",
		Address:  "1 Oak Street",
	}
}

// profileRequest fills every required profile field.
func profileRequest(email string) *request.UpdateProfileRequest {
	return &request.UpdateProfileRequest{
		Email:     email,
		FirstName: "Alice",
		LastName:  "Smith",
		Phone:     "555-0100",
		Address:   "1 Oak Street",
	}
}

func qty(n int) *int { return &n }

func fixedNow(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func zapNop() *zap.Logger { return zap.NewNop() }
