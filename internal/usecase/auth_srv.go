package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"furniture-store/internal/apperror"
	"furniture-store/internal/data/entity"
	"furniture-store/internal/data/repository"
	"furniture-store/internal/dto/request"
	"furniture-store/internal/dto/response"
	"furniture-store/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errInvalidCredentials = apperror.Auth("invalid credentials")

// AuthService registers accounts and issues and revokes their tokens.
type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, principal *utils.Principal) error
}

type authService struct {
	users       repository.UserRepository
	revocations repository.TokenRevocationRepository
	tokens      *utils.TokenManager
	log         *zap.Logger
}

// NewAuthService builds the credential service. A nil revocations repository
// makes Logout a no-op.
func NewAuthService(
	users repository.UserRepository,
	revocations repository.TokenRevocationRepository,
	tokens *utils.TokenManager,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:       users,
		revocations: revocations,
		tokens:      tokens,
		log:         log.With(zap.String("service", "auth")),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an active account with a hashed password. Username and
// email conflicts are reported as conflicts.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	log := utils.LoggerFromContext(ctx, s.log)

	req.Username = strings.TrimSpace(req.Username)
	req.Email = normalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	// 1. Cheap pre-checks; the unique indexes decide races.
	existing, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, storageFailure(ctx, s.log, "failed to check username", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("username already exists")
	}

	existing, err = s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, storageFailure(ctx, s.log, "failed to check email", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("email already in use")
	}

	// 2. Hash password
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return nil, apperror.Persistence("failed to process password", err)
	}

	// 3. Save user
	now := time.Now().UTC()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, apperror.Conflict("username already exists")
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, apperror.Conflict("email already in use")
		}
		return nil, storageFailure(ctx, s.log, "failed to create account", err)
	}

	log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.UserToResponse(user)
	return &resp, nil
}

// Login issues a token for valid credentials. Every failure returns the same
// invalid credentials error.
func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	log := utils.LoggerFromContext(ctx, s.log)

	req.Username = strings.TrimSpace(req.Username)
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, storageFailure(ctx, s.log, "failed to find user", err)
	}

	// Unknown, inactive and wrong-password logins look the same to the caller.
	if user == nil {
		utils.BurnPasswordCheck(req.Password)
		log.Warn("Login for unknown user", zap.String("username", req.Username))
		return nil, errInvalidCredentials
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, errInvalidCredentials
	}

	issued, err := s.tokens.Issue(user.Username)
	if err != nil {
		log.Error("Failed to sign token", zap.Error(err))
		return nil, apperror.Persistence("failed to create session", err)
	}

	log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &response.AuthResponse{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		User:      response.UserToResponse(user),
	}, nil
}

// Logout denylists the presented token until it would have expired anyway.
// With revocation disabled the call succeeds and the token stays valid.
func (s *authService) Logout(ctx context.Context, principal *utils.Principal) error {
	log := utils.LoggerFromContext(ctx, s.log)

	if s.revocations == nil {
		log.Debug("Token revocation disabled, logout is client-side only")
		return nil
	}

	err := s.revocations.Revoke(ctx, &entity.RevokedToken{
		TokenID:   principal.TokenID,
		Username:  principal.Username,
		ExpiresAt: principal.ExpiresAt,
		RevokedAt: time.Now().UTC(),
	})
	if err != nil {
		return storageFailure(ctx, s.log, "failed to logout", err)
	}

	log.Info("User logged out", zap.String("user_id", principal.UserID.String()))
	return nil
}
