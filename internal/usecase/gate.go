package usecase

import (
	"context"
	"errors"
	"strings"

	"furniture-store/internal/apperror"
	"furniture-store/internal/data/repository"
	"furniture-store/pkg/utils"

	"go.uber.org/zap"
)

const bearerScheme = "bearer"

var (
	errMissingHeader = apperror.Auth("missing authorization header")
	errInvalidToken  = apperror.Auth("invalid token")
	errUserNotFound  = apperror.NotFound("user not found")
)

// AccessGate turns an Authorization header into the principal of an active user.
type AccessGate struct {
	tokens      *utils.TokenManager
	users       repository.UserRepository
	revocations repository.TokenRevocationRepository
	log         *zap.Logger
}

// NewAccessGate builds a gate. A nil revocations repository disables the
// denylist check.
func NewAccessGate(
	tokens *utils.TokenManager,
	users repository.UserRepository,
	revocations repository.TokenRevocationRepository,
	log *zap.Logger,
) *AccessGate {
	return &AccessGate{
		tokens:      tokens,
		users:       users,
		revocations: revocations,
		log:         log.With(zap.String("component", "access_gate")),
	}
}

// BearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively and extra whitespace is ignored.
func BearerToken(header string) (string, error) {
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return "", errMissingHeader
	}
	if len(fields) != 2 || strings.ToLower(fields[0]) != bearerScheme {
		return "", errInvalidToken
	}
	return fields[1], nil
}

// Authorize resolves the bearer token in header and loads its active user.
// Malformed, tampered, expired and revoked tokens all fail with the same
// invalid token error.
func (g *AccessGate) Authorize(ctx context.Context, header string) (*utils.Principal, error) {
	log := utils.LoggerFromContext(ctx, g.log)

	raw, err := BearerToken(header)
	if err != nil {
		return nil, err
	}

	claims, err := g.tokens.Resolve(raw)
	if err != nil {
		log.Debug("Token rejected",
			zap.Bool("expired", errors.Is(err, utils.ErrTokenExpired)),
			zap.Error(err),
		)
		return nil, errInvalidToken
	}

	if g.revocations != nil {
		revoked, err := g.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, storageFailure(ctx, g.log, "failed to verify token", err)
		}
		if revoked {
			log.Debug("Revoked token presented", zap.String("jti", claims.ID))
			return nil, errInvalidToken
		}
	}

	user, err := g.users.FindByUsername(ctx, claims.Username)
	if err != nil {
		return nil, storageFailure(ctx, g.log, "failed to load user", err)
	}
	if user == nil {
		log.Warn("Token for unknown or inactive user", zap.String("username", claims.Username))
		return nil, errUserNotFound
	}

	return &utils.Principal{
		UserID:    user.ID,
		Username:  user.Username,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}
