package repository

import (
	"context"

	"furniture-store/pkg/database"

	"go.uber.org/zap"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Repository struct {
	User       UserRepository
	Cart       CartRepository
	CartItem   CartItemRepository
	Revocation TokenRevocationRepository
	Health     HealthChecker
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Cart:       NewCartRepository(db, log),
		CartItem:   NewCartItemRepository(db, log),
		Revocation: NewTokenRevocationRepository(db, log),
		Health:     db,
	}
}
