package entity

import "github.com/google/uuid"

// Cart belongs to exactly one user; user_id is unique across carts.
type Cart struct {
	BaseSimple
	UserID uuid.UUID `db:"user_id"`
}

func (c *Cart) OwnedBy(userID uuid.UUID) bool {
	return c != nil && c.UserID == userID
}
