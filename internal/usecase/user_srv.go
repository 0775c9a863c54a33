package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"furniture-store/internal/apperror"
	"furniture-store/internal/data/repository"
	"furniture-store/internal/dto/request"
	"furniture-store/internal/dto/response"
	"furniture-store/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	Deactivate(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

// NewUserService builds the profile service.
func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

// GetProfile returns the active user's profile.
func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, storageFailure(ctx, us.log, "failed to get profile", err)
	}
	if user == nil {
		return nil, errUserNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateProfile replaces the editable profile fields. Username and password
// are not editable here.
func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	log := utils.LoggerFromContext(ctx, us.log)

	req.Email = normalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, storageFailure(ctx, us.log, "failed to get profile", err)
	}
	if user == nil {
		return nil, errUserNotFound
	}

	if req.Email != user.Email {
		other, err := us.userRepo.FindByEmail(ctx, req.Email)
		if err != nil {
			return nil, storageFailure(ctx, us.log, "failed to check email", err)
		}
		if other != nil && other.ID != user.ID {
			return nil, apperror.Conflict("email already in use")
		}
	}

	updated := *user
	updated.Email = req.Email
	updated.FirstName = strings.TrimSpace(req.FirstName)
	updated.LastName = strings.TrimSpace(req.LastName)
	updated.Phone = strings.TrimSpace(req.Phone)
	updated.Address = strings.TrimSpace(req.Address)
	updated.UpdatedAt = time.Now().UTC()

	if err := us.userRepo.UpdateProfile(ctx, &updated); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, apperror.Conflict("email already in use")
		case errors.Is(err, repository.ErrNotFound):
			return nil, errUserNotFound
		}
		return nil, storageFailure(ctx, us.log, "failed to update profile", err)
	}

	log.Info("Profile updated", zap.String("user_id", userID.String()))

	resp := response.UserToResponse(&updated)
	return &resp, nil
}

// Deactivate tombstones the account and empties its cart in one transaction.
func (us *userService) Deactivate(ctx context.Context, userID uuid.UUID) error {
	log := utils.LoggerFromContext(ctx, us.log)

	if err := us.userRepo.Deactivate(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errUserNotFound
		}
		return storageFailure(ctx, us.log, "failed to deactivate account", err)
	}

	log.Info("User deactivated", zap.String("user_id", userID.String()))
	return nil
}
