package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"furniture-store/internal/apperror"
	"furniture-store/internal/data/entity"
	"furniture-store/internal/data/repository"
	"furniture-store/internal/dto/request"
	"furniture-store/internal/dto/response"
	"furniture-store/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	errItemNotFound = apperror.NotFound("cart item not found")
	errCartNotFound = apperror.NotFound("cart not found")
)

// CartService mutates the caller's own cart. The cart is always derived from
// the user id; item ids from the request are only ever looked up inside it.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *request.AddItemRequest) (*response.CartItemResponse, error)
	UpdateItem(ctx context.Context, userID uuid.UUID, itemID string, req *request.UpdateItemRequest) (*response.UpdateItemResponse, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, itemID string) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	cartRepo repository.CartRepository
	itemRepo repository.CartItemRepository
	log      *zap.Logger
}

// NewCartService builds the cart engine over the cart and item repositories.
func NewCartService(cartRepo repository.CartRepository, itemRepo repository.CartItemRepository, log *zap.Logger) CartService {
	return &cartService{
		cartRepo: cartRepo,
		itemRepo: itemRepo,
		log:      log.With(zap.String("service", "cart")),
	}
}

func (s *cartService) cartFor(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, storageFailure(ctx, s.log, "failed to load cart", err)
	}
	if !cart.OwnedBy(userID) {
		utils.LoggerFromContext(ctx, s.log).Error("Cart owner mismatch",
			zap.String("cart_id", cart.ID.String()),
			zap.String("user_id", userID.String()))
		return nil, errCartNotFound
	}
	return cart, nil
}

// mutationFailure maps repository errors from item mutations.
func (s *cartService) mutationFailure(ctx context.Context, message string, err error) error {
	switch {
	case errors.Is(err, repository.ErrQuantityLimit):
		return quantityTooLarge()
	case errors.Is(err, repository.ErrNotFound):
		return errCartNotFound
	}
	return storageFailure(ctx, s.log, message, err)
}

func quantityTooLarge() error {
	return apperror.Validation("invalid quantity", map[string]string{
		"quantity": fmt.Sprintf("Maximum quantity per item is %d", repository.MaxItemQuantity),
	})
}

func parseItemID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid item id", map[string]string{
			"itemId": "Must be a valid UUID",
		})
	}
	return id, nil
}

// GetCart returns the caller's cart with its lines and totals, creating an
// empty cart on first access.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error) {
	cart, err := s.cartFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.FindByCartID(ctx, cart.ID)
	if err != nil {
		return nil, storageFailure(ctx, s.log, "failed to load cart items", err)
	}

	resp := response.CartToResponse(cart, items)
	return &resp, nil
}

// AddItem adds quantity units (default 1) of a product. Adding a product the
// cart already holds increases that line instead of creating a second one.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *request.AddItemRequest) (*response.CartItemResponse, error) {
	log := utils.LoggerFromContext(ctx, s.log)

	req.ProductID = strings.TrimSpace(req.ProductID)
	if err := validate(req); err != nil {
		return nil, err
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity <= 0 {
		return nil, apperror.Validation("invalid quantity", map[string]string{
			"quantity": "Must be at least 1",
		})
	}
	if quantity > repository.MaxItemQuantity {
		return nil, quantityTooLarge()
	}

	cart, err := s.cartFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.AddOrIncrement(ctx, cart.ID, req.ProductID, quantity)
	if err != nil {
		return nil, s.mutationFailure(ctx, "failed to add item", err)
	}

	log.Info("Cart item added",
		zap.String("cart_id", cart.ID.String()),
		zap.String("product_id", item.ProductID),
		zap.Int("quantity", item.Quantity))

	resp := response.CartItemToResponse(item)
	return &resp, nil
}

// UpdateItem sets an absolute quantity. A quantity of zero or less removes
// the line, with the same idempotent semantics as RemoveItem.
func (s *cartService) UpdateItem(ctx context.Context, userID uuid.UUID, itemID string, req *request.UpdateItemRequest) (*response.UpdateItemResponse, error) {
	log := utils.LoggerFromContext(ctx, s.log)

	id, err := parseItemID(itemID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	quantity := *req.Quantity
	if quantity <= 0 {
		if err := s.remove(ctx, userID, id); err != nil {
			return nil, err
		}
		return &response.UpdateItemResponse{Removed: true}, nil
	}
	if quantity > repository.MaxItemQuantity {
		return nil, quantityTooLarge()
	}

	cart, err := s.cartFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.SetQuantity(ctx, cart.ID, id, quantity)
	if err != nil {
		return nil, s.mutationFailure(ctx, "failed to update item", err)
	}
	if item == nil {
		log.Debug("Cart item not in caller's cart", zap.String("item_id", id.String()))
		return nil, errItemNotFound
	}

	log.Info("Cart item updated",
		zap.String("cart_id", cart.ID.String()),
		zap.String("item_id", item.ID.String()),
		zap.Int("quantity", item.Quantity))

	resp := response.CartItemToResponse(item)
	return &response.UpdateItemResponse{Item: &resp}, nil
}

// RemoveItem is idempotent: removing an item that is absent, or that belongs
// to another cart, succeeds without changing anything.
func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, itemID string) error {
	id, err := parseItemID(itemID)
	if err != nil {
		return err
	}
	return s.remove(ctx, userID, id)
}

func (s *cartService) remove(ctx context.Context, userID, itemID uuid.UUID) error {
	cart, err := s.cartFor(ctx, userID)
	if err != nil {
		return err
	}

	deleted, err := s.itemRepo.Delete(ctx, cart.ID, itemID)
	if err != nil {
		return s.mutationFailure(ctx, "failed to remove item", err)
	}

	utils.LoggerFromContext(ctx, s.log).Info("Cart item removed",
		zap.String("cart_id", cart.ID.String()),
		zap.String("item_id", itemID.String()),
		zap.Bool("deleted", deleted))
	return nil
}

// ClearCart deletes every line in the caller's cart. The cart itself stays.
func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.cartFor(ctx, userID)
	if err != nil {
		return err
	}

	removed, err := s.itemRepo.DeleteByCartID(ctx, cart.ID)
	if err != nil {
		return s.mutationFailure(ctx, "failed to clear cart", err)
	}

	utils.LoggerFromContext(ctx, s.log).Info("Cart cleared",
		zap.String("cart_id", cart.ID.String()),
		zap.Int64("removed", removed))
	return nil
}
