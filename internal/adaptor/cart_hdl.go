package adaptor

import (
	"net/http"

	"furniture-store/internal/dto/request"
	"furniture-store/internal/usecase"
	"furniture-store/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CartHandler struct {
	service usecase.CartService
	log     *zap.Logger
}

func NewCartHandler(service usecase.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log.With(zap.String("handler", "cart")),
	}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	cart, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, h.log, err, "get_cart")
		return
	}

	utils.ResponseSuccess(w, "Cart retrieved", cart)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	var req request.AddItemRequest
	if err := decodeBody(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	item, err := h.service.AddItem(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, r, h.log, err, "add_item")
		return
	}

	utils.ResponseSuccess(w, "Item added to cart", item)
}

// UpdateItem handles PUT /api/cart/items/{itemId}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	var req request.UpdateItemRequest
	if err := decodeBody(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	result, err := h.service.UpdateItem(r.Context(), userID, chi.URLParam(r, "itemId"), &req)
	if err != nil {
		handleServiceError(w, r, h.log, err, "update_item")
		return
	}

	if result.Removed {
		utils.ResponseSuccess(w, "Item removed from cart", result)
		return
	}
	utils.ResponseSuccess(w, "Cart item updated", result)
}

// RemoveItem handles DELETE /api/cart/items/{itemId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	if err := h.service.RemoveItem(r.Context(), userID, chi.URLParam(r, "itemId")); err != nil {
		handleServiceError(w, r, h.log, err, "remove_item")
		return
	}

	utils.ResponseSuccess(w, "Item removed from cart", nil)
}

// ClearCart handles DELETE /api/cart/clear
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "authentication required")
		return
	}

	if err := h.service.ClearCart(r.Context(), userID); err != nil {
		handleServiceError(w, r, h.log, err, "clear_cart")
		return
	}

	utils.ResponseSuccess(w, "Cart cleared", nil)
}
