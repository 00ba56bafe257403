package repos

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/types"
)

type ProductRepo interface {
	Create(ctx context.Context, tx *gorm.DB, product *types.Product) (*types.Product, error)
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Product, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*types.Product, error)
	List(ctx context.Context, tx *gorm.DB, filter types.ProductFilter) ([]*types.Product, int64, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id string, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) (int64, error)
	SKUExists(ctx context.Context, tx *gorm.DB, sku string, excludeID string) (bool, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{db: db, log: repoLog}
}

func (r *productRepo) Create(ctx context.Context, tx *gorm.DB, product *types.Product) (*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Product
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *productRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Product
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *productRepo) List(ctx context.Context, tx *gorm.DB, filter types.ProductFilter) ([]*types.Product, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Model(&types.Product{})

	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"lower(name) LIKE ? OR lower(category) LIKE ? OR lower(type) LIKE ? OR lower(brand) LIKE ? OR lower(sku) LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	switch filter.Active {
	case "all":
	case "false":
		query = query.Where("is_active = ?", false)
	default:
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case "price_asc":
		query = query.Order("price ASC")
	case "rating":
		query = query.Order("rating DESC")
	case "newest":
		query = query.Order("created_at DESC")
	case "oldest":
		query = query.Order("created_at ASC")
	default:
		query = query.Order("price DESC")
	}

	offset := (filter.Page - 1) * filter.Limit
	var results []*types.Product
	if err := query.Offset(offset).Limit(filter.Limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *productRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id string, fields map[string]interface{}) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	result := transaction.WithContext(ctx).
		Model(&types.Product{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *productRepo) Delete(ctx context.Context, tx *gorm.DB, id string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	result := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Product{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *productRepo) SKUExists(ctx context.Context, tx *gorm.DB, sku string, excludeID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	query := transaction.WithContext(ctx).
		Model(&types.Product{}).
		Where("sku = ?", sku)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
