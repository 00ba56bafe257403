package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/apierr"
	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/types"
)

type WishlistService interface {
	GetWishlist(ctx context.Context, userID string) ([]*types.WishlistEntry, error)
	AddItem(ctx context.Context, userID, productID string) (*types.WishlistEntry, error)
	RemoveItem(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

type wishlistService struct {
	db               *gorm.DB
	log              *logger.Logger
	wishlistItemRepo repos.WishlistItemRepo
	productRepo      repos.ProductRepo
	activity         ActivityService
}

func NewWishlistService(db *gorm.DB, log *logger.Logger, wishlistItemRepo repos.WishlistItemRepo, productRepo repos.ProductRepo, activity ActivityService) WishlistService {
	serviceLog := log.With("service", "WishlistService")
	return &wishlistService{
		db:               db,
		log:              serviceLog,
		wishlistItemRepo: wishlistItemRepo,
		productRepo:      productRepo,
		activity:         activity,
	}
}

// GetWishlist hides entries whose product is missing or inactive
// without deleting the underlying rows.
func (ws *wishlistService) GetWishlist(ctx context.Context, userID string) ([]*types.WishlistEntry, error) {
	items, err := ws.wishlistItemRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wishlist items: %w", err)
	}
	entries := []*types.WishlistEntry{}
	if len(items) == 0 {
		return entries, nil
	}

	productIDs := make([]string, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := ws.productRepo.GetByIDs(ctx, nil, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wishlist products: %w", err)
	}
	byID := make(map[string]*types.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok || !product.IsActive {
			continue
		}
		entries = append(entries, &types.WishlistEntry{
			ID:      item.ID,
			Product: product,
			AddedAt: item.CreatedAt,
		})
	}
	return entries, nil
}

func (ws *wishlistService) AddItem(ctx context.Context, userID, productID string) (*types.WishlistEntry, error) {
	if !types.IsValidID(productID) {
		return nil, apierr.Validation("invalid product id")
	}

	product, err := ws.productRepo.GetByID(ctx, nil, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("product not found")
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	if !product.IsActive {
		return nil, apierr.NotFound("product not found")
	}

	item := &types.WishlistItem{
		ID:        types.NewID(),
		UserID:    userID,
		ProductID: productID,
	}
	created, err := ws.wishlistItemRepo.Create(ctx, nil, item)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("product already in wishlist")
		}
		return nil, fmt.Errorf("failed to create wishlist item: %w", err)
	}
	ws.activity.Record(ctx, userID, "wishlist.added", "product", productID, nil)
	return &types.WishlistEntry{ID: created.ID, Product: product, AddedAt: created.CreatedAt}, nil
}

// RemoveItem is strict: removing an absent product is NotFound, unlike
// Clear which always succeeds.
func (ws *wishlistService) RemoveItem(ctx context.Context, userID, productID string) error {
	if !types.IsValidID(productID) {
		return apierr.Validation("invalid product id")
	}
	rows, err := ws.wishlistItemRepo.DeleteByUserAndProduct(ctx, nil, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist item: %w", err)
	}
	if rows == 0 {
		return apierr.NotFound("wishlist item not found")
	}
	ws.activity.Record(ctx, userID, "wishlist.removed", "product", productID, nil)
	return nil
}

func (ws *wishlistService) Clear(ctx context.Context, userID string) error {
	if err := ws.wishlistItemRepo.DeleteByUserID(ctx, nil, userID); err != nil {
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}
	ws.activity.Record(ctx, userID, "wishlist.cleared", "wishlist", userID, nil)
	return nil
}
