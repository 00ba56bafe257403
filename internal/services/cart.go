package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/apierr"
	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/types"
)

// CartService joins a user's cart lines with live product state. Items
// whose product is missing or inactive are hidden from summaries, never
// deleted: reactivating the product makes them reappear.
type CartService interface {
	GetSummary(ctx context.Context, userID string) (*types.CartSummary, error)
	// AddItem reports raced=true when a concurrent add for the same
	// (user, product) pair won the insert; the returned summary already
	// reflects the winner's write.
	AddItem(ctx context.Context, userID, productID string, quantity int) (summary *types.CartSummary, raced bool, err error)
	UpdateQuantity(ctx context.Context, userID, cartItemID string, quantity int) (*types.CartSummary, error)
	RemoveItem(ctx context.Context, userID, cartItemID string) (*types.CartSummary, error)
	Clear(ctx context.Context, userID string) (*types.CartSummary, error)
}

type cartService struct {
	db           *gorm.DB
	log          *logger.Logger
	cartItemRepo repos.CartItemRepo
	productRepo  repos.ProductRepo
	activity     ActivityService
}

func NewCartService(db *gorm.DB, log *logger.Logger, cartItemRepo repos.CartItemRepo, productRepo repos.ProductRepo, activity ActivityService) CartService {
	serviceLog := log.With("service", "CartService")
	return &cartService{
		db:           db,
		log:          serviceLog,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		activity:     activity,
	}
}

func (cs *cartService) GetSummary(ctx context.Context, userID string) (*types.CartSummary, error) {
	return cs.buildSummary(ctx, userID)
}

func (cs *cartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*types.CartSummary, bool, error) {
	if !types.IsValidID(productID) {
		return nil, false, apierr.Validation("invalid product id")
	}
	if quantity < 1 {
		quantity = 1
	}

	product, err := cs.productRepo.GetByID(ctx, nil, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apierr.NotFound("product not found")
		}
		return nil, false, fmt.Errorf("failed to fetch product: %w", err)
	}
	if !product.IsActive {
		return nil, false, apierr.NotFound("product not found")
	}

	raced := false
	existing, err := cs.cartItemRepo.GetByUserAndProduct(ctx, nil, userID, productID)
	switch {
	case err == nil:
		newQuantity := existing.Quantity + quantity
		if newQuantity < 1 {
			newQuantity = 1
		}
		if err := cs.cartItemRepo.UpdateQuantity(ctx, nil, existing.ID, newQuantity); err != nil {
			return nil, false, fmt.Errorf("failed to update cart item: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &types.CartItem{
			ID:        types.NewID(),
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if _, err := cs.cartItemRepo.Create(ctx, nil, item); err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, false, fmt.Errorf("failed to create cart item: %w", err)
			}
			// Lost the insert race against a concurrent add. The unique
			// (user, product) index is the backstop; one writer went
			// through, so a fresh read is already consistent.
			cs.log.Debug("Cart add lost insert race, re-reading", "user_id", userID, "product_id", productID)
			raced = true
		}
	default:
		return nil, false, fmt.Errorf("failed to look up cart item: %w", err)
	}

	if !raced {
		cs.activity.Record(ctx, userID, "cart.added", "product", productID, map[string]any{"quantity": quantity})
	}

	summary, err := cs.buildSummary(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return summary, raced, nil
}

func (cs *cartService) UpdateQuantity(ctx context.Context, userID, cartItemID string, quantity int) (*types.CartSummary, error) {
	if !types.IsValidID(cartItemID) {
		return nil, apierr.Validation("invalid cart item id")
	}
	if quantity < 1 {
		return nil, apierr.Validation("quantity must be at least 1")
	}

	item, err := cs.cartItemRepo.GetByIDForUser(ctx, nil, cartItemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("cart item not found")
		}
		return nil, fmt.Errorf("failed to fetch cart item: %w", err)
	}
	if err := cs.cartItemRepo.UpdateQuantity(ctx, nil, item.ID, quantity); err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	cs.activity.Record(ctx, userID, "cart.updated", "cart_item", item.ID, map[string]any{"quantity": quantity})
	return cs.buildSummary(ctx, userID)
}

func (cs *cartService) RemoveItem(ctx context.Context, userID, cartItemID string) (*types.CartSummary, error) {
	if !types.IsValidID(cartItemID) {
		return nil, apierr.Validation("invalid cart item id")
	}
	rows, err := cs.cartItemRepo.DeleteByIDForUser(ctx, nil, cartItemID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete cart item: %w", err)
	}
	if rows == 0 {
		return nil, apierr.NotFound("cart item not found")
	}
	cs.activity.Record(ctx, userID, "cart.removed", "cart_item", cartItemID, nil)
	return cs.buildSummary(ctx, userID)
}

func (cs *cartService) Clear(ctx context.Context, userID string) (*types.CartSummary, error) {
	if err := cs.cartItemRepo.DeleteByUserID(ctx, nil, userID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}
	cs.activity.Record(ctx, userID, "cart.cleared", "cart", userID, nil)
	// known-empty: skip the recompute round trip
	return types.EmptyCartSummary(), nil
}

// buildSummary recomputes the aggregate from current product state on
// every call; prices are never snapshotted into the cart.
func (cs *cartService) buildSummary(ctx context.Context, userID string) (*types.CartSummary, error) {
	items, err := cs.cartItemRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart items: %w", err)
	}
	if len(items) == 0 {
		return types.EmptyCartSummary(), nil
	}

	productIDs := make([]string, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := cs.productRepo.GetByIDs(ctx, nil, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart products: %w", err)
	}
	byID := make(map[string]*types.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	summary := types.EmptyCartSummary()
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok || !product.IsActive {
			continue
		}
		quantity := item.Quantity
		if quantity < 0 {
			quantity = 0
		}
		price := product.Price
		if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
			price = 0
		}
		subtotal := float64(quantity) * price
		summary.Items = append(summary.Items, &types.CartEntry{
			ID:       item.ID,
			Product:  product,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		summary.Count += quantity
		summary.Total += subtotal
	}
	return summary, nil
}
