package repository

import (
	"context"
	"time"

	"furniture-store/internal/data/entity"
	"furniture-store/pkg/database"

	"go.uber.org/zap"
)

// TokenRevocationRepository is the logout denylist keyed by token id (jti).
type TokenRevocationRepository interface {
	Revoke(ctx context.Context, token *entity.RevokedToken) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type tokenRevocationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTokenRevocationRepository(db database.PgxIface, log *zap.Logger) TokenRevocationRepository {
	return &tokenRevocationRepository{
		db:  db,
		log: log.With(zap.String("repository", "token_revocation")),
	}
}

// Revoke is idempotent: revoking the same token twice is not an error.
func (r *tokenRevocationRepository) Revoke(ctx context.Context, token *entity.RevokedToken) error {
	query := `
		INSERT INTO revoked_tokens (jti, username, expires_at, revoked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (jti) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		token.TokenID,
		token.Username,
		token.ExpiresAt,
		token.RevokedAt,
	)
	if err != nil {
		r.log.Error("Failed to revoke token",
			zap.Error(err),
			zap.String("username", token.Username),
		)
		return wrapErr("revoke token", err)
	}

	return nil
}

func (r *tokenRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var revoked bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)`, tokenID).Scan(&revoked)
	if err != nil {
		r.log.Error("Failed to check token revocation", zap.Error(err))
		return false, wrapErr("check token revocation", err)
	}

	return revoked, nil
}

// PurgeExpired drops entries whose token would be rejected as expired anyway.
func (r *tokenRevocationRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at < $1`, now)
	if err != nil {
		r.log.Error("Failed to purge expired revocations", zap.Error(err))
		return 0, wrapErr("purge revoked tokens", err)
	}

	return result.RowsAffected(), nil
}
