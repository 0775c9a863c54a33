package response

import (
	"time"

	"furniture-store/internal/data/entity"
)

type CartItemResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CartResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id"`
	Items         []CartItemResponse `json:"items"`
	ItemCount     int                `json:"item_count"`
	TotalQuantity int                `json:"total_quantity"`
	CreatedAt     time.Time          `json:"created_at"`
}

// UpdateItemResponse reports the line after an update; Item is nil when the
// update removed it.
type UpdateItemResponse struct {
	Removed bool              `json:"removed"`
	Item    *CartItemResponse `json:"item,omitempty"`
}

func CartItemToResponse(item *entity.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:        item.ID.String(),
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func CartToResponse(cart *entity.Cart, items []*entity.CartItem) CartResponse {
	resp := CartResponse{
		ID:        cart.ID.String(),
		UserID:    cart.UserID.String(),
		Items:     make([]CartItemResponse, 0, len(items)),
		ItemCount: len(items),
		CreatedAt: cart.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, CartItemToResponse(item))
		resp.TotalQuantity += item.Quantity
	}
	return resp
}
