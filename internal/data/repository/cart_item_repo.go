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

// CartItemRepository scopes every item operation by cart_id, so an item id
// from somebody else's cart never matches. Mutations hold the cart row lock.
type CartItemRepository interface {
	FindByCartID(ctx context.Context, cartID uuid.UUID) ([]*entity.CartItem, error)
	// AddOrIncrement inserts the product or adds quantity to the existing line.
	AddOrIncrement(ctx context.Context, cartID uuid.UUID, productID string, quantity int) (*entity.CartItem, error)
	// SetQuantity returns nil, nil when the item is not in the cart.
	SetQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (*entity.CartItem, error)
	Delete(ctx context.Context, cartID, itemID uuid.UUID) (bool, error)
	DeleteByCartID(ctx context.Context, cartID uuid.UUID) (int64, error)
}

type cartItemRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCartItemRepository(db database.PgxIface, log *zap.Logger) CartItemRepository {
	return &cartItemRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart_item")),
	}
}

const cartItemColumns = `id, cart_id, product_id, quantity, created_at, updated_at`

func scanCartItem(row pgx.Row) (*entity.CartItem, error) {
	var item entity.CartItem
	err := row.Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartItemRepository) FindByCartID(ctx context.Context, cartID uuid.UUID) ([]*entity.CartItem, error) {
	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE cart_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, cartID)
	if err != nil {
		r.log.Error("Failed to find cart items",
			zap.Error(err),
			zap.String("cart_id", cartID.String()),
		)
		return nil, wrapErr("find cart items", err)
	}
	defer rows.Close()

	items := make([]*entity.CartItem, 0)
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			r.log.Error("Failed to scan cart item row", zap.Error(err))
			return nil, wrapErr("scan cart item", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, wrapErr("iterate cart items", err)
	}

	return items, nil
}

func (r *cartItemRepository) AddOrIncrement(ctx context.Context, cartID uuid.UUID, productID string, quantity int) (*entity.CartItem, error) {
	var item *entity.CartItem

	err := runInTx(ctx, r.db, "add cart item", func(ctx context.Context, tx pgx.Tx) error {
		if err := lockCart(ctx, tx, cartID); err != nil {
			return err
		}

		query := `
			INSERT INTO cart_items (id, cart_id, product_id, quantity, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			ON CONFLICT (cart_id, product_id) DO UPDATE
			SET quantity = cart_items.quantity + EXCLUDED.quantity,
			    updated_at = EXCLUDED.updated_at
			WHERE cart_items.quantity + EXCLUDED.quantity <= $6
			RETURNING ` + cartItemColumns

		var err error
		item, err = scanCartItem(tx.QueryRow(ctx, query,
			uuid.New(), cartID, productID, quantity, time.Now().UTC(), MaxItemQuantity))
		if err == pgx.ErrNoRows {
			return ErrQuantityLimit
		}
		if err != nil {
			r.log.Error("Failed to upsert cart item",
				zap.Error(err),
				zap.String("cart_id", cartID.String()),
				zap.String("product_id", productID),
			)
			return wrapErr("upsert cart item", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *cartItemRepository) SetQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (*entity.CartItem, error) {
	var item *entity.CartItem

	err := runInTx(ctx, r.db, "set cart item quantity", func(ctx context.Context, tx pgx.Tx) error {
		if err := lockCart(ctx, tx, cartID); err != nil {
			return err
		}

		query := `
			UPDATE cart_items SET quantity = $3, updated_at = $4
			WHERE id = $1 AND cart_id = $2
			RETURNING ` + cartItemColumns

		var err error
		item, err = scanCartItem(tx.QueryRow(ctx, query, itemID, cartID, quantity, time.Now().UTC()))
		if err == pgx.ErrNoRows {
			item = nil
			return nil
		}
		if err != nil {
			r.log.Error("Failed to update cart item quantity",
				zap.Error(err),
				zap.String("item_id", itemID.String()),
			)
			return wrapErr("update cart item quantity", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *cartItemRepository) Delete(ctx context.Context, cartID, itemID uuid.UUID) (bool, error) {
	var deleted bool

	err := runInTx(ctx, r.db, "delete cart item", func(ctx context.Context, tx pgx.Tx) error {
		if err := lockCart(ctx, tx, cartID); err != nil {
			return err
		}

		result, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`, itemID, cartID)
		if err != nil {
			r.log.Error("Failed to delete cart item",
				zap.Error(err),
				zap.String("item_id", itemID.String()),
			)
			return wrapErr("delete cart item", err)
		}
		deleted = result.RowsAffected() > 0
		return nil
	})

	return deleted, err
}

func (r *cartItemRepository) DeleteByCartID(ctx context.Context, cartID uuid.UUID) (int64, error) {
	var removed int64

	err := runInTx(ctx, r.db, "clear cart", func(ctx context.Context, tx pgx.Tx) error {
		if err := lockCart(ctx, tx, cartID); err != nil {
			return err
		}

		result, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
		if err != nil {
			r.log.Error("Failed to clear cart",
				zap.Error(err),
				zap.String("cart_id", cartID.String()),
			)
			return wrapErr("clear cart", err)
		}
		removed = result.RowsAffected()
		return nil
	})

	return removed, err
}
