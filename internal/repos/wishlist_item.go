package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/types"
)

type WishlistItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, item *types.WishlistItem) (*types.WishlistItem, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string) ([]*types.WishlistItem, error)
	DeleteByUserAndProduct(ctx context.Context, tx *gorm.DB, userID, productID string) (int64, error)
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID string) error
}

type wishlistItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWishlistItemRepo(db *gorm.DB, baseLog *logger.Logger) WishlistItemRepo {
	repoLog := baseLog.With("repo", "WishlistItemRepo")
	return &wishlistItemRepo{db: db, log: repoLog}
}

func (r *wishlistItemRepo) Create(ctx context.Context, tx *gorm.DB, item *types.WishlistItem) (*types.WishlistItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *wishlistItemRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) ([]*types.WishlistItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.WishlistItem
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *wishlistItemRepo) DeleteByUserAndProduct(ctx context.Context, tx *gorm.DB, userID, productID string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	result := transaction.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&types.WishlistItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *wishlistItemRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.WishlistItem{}).Error
}
