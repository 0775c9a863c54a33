package repository

import (
	"context"
	"time"

	"furniture-store/internal/data/entity"
	"furniture-store/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CartRepository interface {
	// GetOrCreate returns the user's cart, creating it on first access.
	// Concurrent first calls for one user yield a single cart.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
}

type cartRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCartRepository(db database.PgxIface, log *zap.Logger) CartRepository {
	return &cartRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart")),
	}
}

func (r *cartRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	// the unique constraint on user_id arbitrates racing first accesses
	_, err := r.db.Exec(ctx, `
		INSERT INTO carts (id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING
	`, uuid.New(), userID, time.Now().UTC())
	if err != nil {
		r.log.Error("Failed to create cart",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, wrapErr("create cart", err)
	}

	cart, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		// only possible if the user row vanished between the two statements
		return nil, ErrNotFound
	}
	return cart, nil
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	query := `SELECT id, user_id, created_at FROM carts WHERE user_id = $1`

	var cart entity.Cart
	err := r.db.QueryRow(ctx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cart by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, wrapErr("find cart by user id", err)
	}

	return &cart, nil
}
