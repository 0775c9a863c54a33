package entity

import "github.com/google/uuid"

// CartItem is unique per (cart_id, product_id) and always has Quantity >= 1.
type CartItem struct {
	Base
	CartID    uuid.UUID `db:"cart_id"`
	ProductID string    `db:"product_id"`
	Quantity  int       `db:"quantity"`
}
