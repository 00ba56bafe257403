package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/types"
)

type CartItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, item *types.CartItem) (*types.CartItem, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string) ([]*types.CartItem, error)
	GetByIDForUser(ctx context.Context, tx *gorm.DB, id, userID string) (*types.CartItem, error)
	GetByUserAndProduct(ctx context.Context, tx *gorm.DB, userID, productID string) (*types.CartItem, error)
	UpdateQuantity(ctx context.Context, tx *gorm.DB, id string, quantity int) error
	DeleteByIDForUser(ctx context.Context, tx *gorm.DB, id, userID string) (int64, error)
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID string) error
}

type cartItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartItemRepo(db *gorm.DB, baseLog *logger.Logger) CartItemRepo {
	repoLog := baseLog.With("repo", "CartItemRepo")
	return &cartItemRepo{db: db, log: repoLog}
}

func (r *cartItemRepo) Create(ctx context.Context, tx *gorm.DB, item *types.CartItem) (*types.CartItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *cartItemRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) ([]*types.CartItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.CartItem
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *cartItemRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, id, userID string) (*types.CartItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.CartItem
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *cartItemRepo) GetByUserAndProduct(ctx context.Context, tx *gorm.DB, userID, productID string) (*types.CartItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.CartItem
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *cartItemRepo) UpdateQuantity(ctx context.Context, tx *gorm.DB, id string, quantity int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.CartItem{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *cartItemRepo) DeleteByIDForUser(ctx context.Context, tx *gorm.DB, id, userID string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	result := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.CartItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *cartItemRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.CartItem{}).Error
}
