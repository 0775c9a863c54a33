package repository

import (
	"context"
	"time"

	"furniture-store/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type timeoutProvider interface {
	QueryTimeout() time.Duration
}

// runInTx runs fn inside one transaction, bounded by the pool's query timeout.
// Any error from fn rolls the whole transaction back.
func runInTx(ctx context.Context, db database.PgxIface, op string, fn func(ctx context.Context, tx pgx.Tx) error) error {
	if tp, ok := db.(timeoutProvider); ok && tp.QueryTimeout() > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, tp.QueryTimeout())
		defer cancel()
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return wrapErr(op+": begin", err)
	}
	defer func() {
		// no-op after a successful commit
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return wrapErr(op+": commit", err)
	}
	return nil
}

// lockCart takes the per-cart row lock that serializes item mutations.
func lockCart(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM carts WHERE id = $1 FOR UPDATE`, cartID).Scan(&id)
	if err == pgx.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return wrapErr("lock cart", err)
	}
	return nil
}
