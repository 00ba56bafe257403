package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/apierr"
	redisclient "github.com/yungbote/storefront-backend/internal/clients/redis"
	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/normalization"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/types"
)

type CreateProductInput struct {
	Name        string
	Category    string
	Type        string
	Brand       *string
	SKU         *string
	Price       float64
	OldPrice    *float64
	Rating      *float64
	Badge       *string
	Image       string
	Description string
	Stock       *int
	IsActive    *bool
}

type UpdateProductInput struct {
	Name        *string
	Category    *string
	Type        *string
	Brand       *string
	SKU         *string
	Price       *float64
	OldPrice    *float64
	Rating      *float64
	Badge       *string
	Image       *string
	Description *string
	Stock       *int
	IsActive    *bool
}

type CatalogService interface {
	List(ctx context.Context, filter types.ProductFilter) (*types.ProductPage, error)
	GetByID(ctx context.Context, id string) (*types.Product, error)
	Create(ctx context.Context, actorID string, input CreateProductInput) (*types.Product, error)
	Update(ctx context.Context, actorID, id string, input UpdateProductInput) (*types.Product, error)
	ToggleActive(ctx context.Context, actorID, id string) (*types.Product, error)
	Delete(ctx context.Context, actorID, id string) error
}

type catalogService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
	cache       redisclient.CatalogCache
	activity    ActivityService
}

func NewCatalogService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo, cache redisclient.CatalogCache, activity ActivityService) CatalogService {
	serviceLog := log.With("service", "CatalogService")
	return &catalogService{
		db:          db,
		log:         serviceLog,
		productRepo: productRepo,
		cache:       cache,
		activity:    activity,
	}
}

func normalizeFilter(filter types.ProductFilter) types.ProductFilter {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Type = strings.TrimSpace(filter.Type)
	filter.Category = strings.TrimSpace(filter.Category)

	switch strings.ToLower(filter.Active) {
	case "false":
		filter.Active = "false"
	case "all":
		filter.Active = "all"
	default:
		filter.Active = "true"
	}
	switch filter.Sort {
	case "price_asc", "rating", "newest", "oldest":
	default:
		filter.Sort = "price_desc"
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	return filter
}

func (s *catalogService) List(ctx context.Context, filter types.ProductFilter) (*types.ProductPage, error) {
	filter = normalizeFilter(filter)

	var cacheKey string
	if s.cache != nil {
		cacheKey = redisclient.FilterKey(
			filter.Search, filter.Type, filter.Category, filter.Active, filter.Sort,
			strconv.Itoa(filter.Page), strconv.Itoa(filter.Limit),
		)
		if payload, ok := s.cache.GetList(ctx, cacheKey); ok {
			var page types.ProductPage
			if err := json.Unmarshal(payload, &page); err == nil {
				return &page, nil
			}
		}
	}

	items, total, err := s.productRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if items == nil {
		items = []*types.Product{}
	}
	page := &types.ProductPage{
		Items: items,
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
		Pages: int64(math.Ceil(float64(total) / float64(filter.Limit))),
	}

	if s.cache != nil {
		if payload, err := json.Marshal(page); err == nil {
			s.cache.SetList(ctx, cacheKey, payload)
		}
	}
	return page, nil
}

func (s *catalogService) GetByID(ctx context.Context, id string) (*types.Product, error) {
	if !types.IsValidID(id) {
		return nil, apierr.Validation("invalid product id")
	}
	product, err := s.productRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("product not found")
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return product, nil
}

func (s *catalogService) Create(ctx context.Context, actorID string, input CreateProductInput) (*types.Product, error) {
	name := normalization.TrimInputString(input.Name)
	category := normalization.TrimInputString(input.Category)
	productType := normalization.TrimInputString(input.Type)
	if name == "" {
		return nil, apierr.Validation("name is required")
	}
	if category == "" {
		return nil, apierr.Validation("category is required")
	}
	if productType == "" {
		return nil, apierr.Validation("type is required")
	}
	if input.Price < 0 || math.IsNaN(input.Price) || math.IsInf(input.Price, 0) {
		return nil, apierr.Validation("price must be a non-negative number")
	}

	sku := normalization.TrimInputStringPtr(input.SKU)
	if sku != nil {
		exists, err := s.productRepo.SKUExists(ctx, nil, *sku, "")
		if err != nil {
			return nil, fmt.Errorf("failed to check sku: %w", err)
		}
		if exists {
			return nil, apierr.Conflict("sku already in use")
		}
	}

	product := &types.Product{
		ID:          types.NewID(),
		Name:        name,
		Category:    category,
		Type:        productType,
		Brand:       normalization.TrimInputStringPtr(input.Brand),
		SKU:         sku,
		Price:       input.Price,
		OldPrice:    input.OldPrice,
		Badge:       normalization.TrimInputStringPtr(input.Badge),
		Image:       normalization.TrimInputString(input.Image),
		Description: normalization.TrimInputString(input.Description),
		IsActive:    true,
	}
	if input.Rating != nil {
		product.Rating = *input.Rating
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	created, err := s.productRepo.Create(ctx, nil, product)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("sku already in use")
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.invalidate(ctx)
	s.activity.Record(ctx, actorID, "product.created", "product", created.ID, map[string]any{"name": created.Name})
	return created, nil
}

func (s *catalogService) Update(ctx context.Context, actorID, id string, input UpdateProductInput) (*types.Product, error) {
	if !types.IsValidID(id) {
		return nil, apierr.Validation("invalid product id")
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		name := normalization.TrimInputString(*input.Name)
		if name == "" {
			return nil, apierr.Validation("name cannot be empty")
		}
		fields["name"] = name
	}
	if input.Category != nil {
		category := normalization.TrimInputString(*input.Category)
		if category == "" {
			return nil, apierr.Validation("category cannot be empty")
		}
		fields["category"] = category
	}
	if input.Type != nil {
		productType := normalization.TrimInputString(*input.Type)
		if productType == "" {
			return nil, apierr.Validation("type cannot be empty")
		}
		fields["type"] = productType
	}
	if input.Price != nil {
		if *input.Price < 0 || math.IsNaN(*input.Price) || math.IsInf(*input.Price, 0) {
			return nil, apierr.Validation("price must be a non-negative number")
		}
		fields["price"] = *input.Price
	}
	if input.SKU != nil {
		sku := normalization.TrimInputStringPtr(input.SKU)
		if sku == nil {
			fields["sku"] = nil
		} else {
			exists, err := s.productRepo.SKUExists(ctx, nil, *sku, id)
			if err != nil {
				return nil, fmt.Errorf("failed to check sku: %w", err)
			}
			if exists {
				return nil, apierr.Conflict("sku already in use")
			}
			fields["sku"] = *sku
		}
	}
	if input.Brand != nil {
		fields["brand"] = normalization.TrimInputStringPtr(input.Brand)
	}
	if input.OldPrice != nil {
		fields["old_price"] = *input.OldPrice
	}
	if input.Rating != nil {
		fields["rating"] = *input.Rating
	}
	if input.Badge != nil {
		fields["badge"] = normalization.TrimInputStringPtr(input.Badge)
	}
	if input.Image != nil {
		fields["image"] = normalization.TrimInputString(*input.Image)
	}
	if input.Description != nil {
		fields["description"] = normalization.TrimInputString(*input.Description)
	}
	if input.Stock != nil {
		fields["stock"] = *input.Stock
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}
	if len(fields) == 0 {
		return s.GetByID(ctx, id)
	}

	rows, err := s.productRepo.UpdateFields(ctx, nil, id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("sku already in use")
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if rows == 0 {
		return nil, apierr.NotFound("product not found")
	}
	s.invalidate(ctx)
	s.activity.Record(ctx, actorID, "product.updated", "product", id, nil)
	return s.GetByID(ctx, id)
}

func (s *catalogService) ToggleActive(ctx context.Context, actorID, id string) (*types.Product, error) {
	if !types.IsValidID(id) {
		return nil, apierr.Validation("invalid product id")
	}
	product, err := s.productRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("product not found")
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	next := !product.IsActive
	if _, err := s.productRepo.UpdateFields(ctx, nil, id, map[string]interface{}{"is_active": next}); err != nil {
		return nil, fmt.Errorf("failed to toggle product: %w", err)
	}
	product.IsActive = next
	s.invalidate(ctx)
	s.activity.Record(ctx, actorID, "product.toggled", "product", id, map[string]any{"is_active": next})
	return product, nil
}

func (s *catalogService) Delete(ctx context.Context, actorID, id string) error {
	if !types.IsValidID(id) {
		return apierr.Validation("invalid product id")
	}
	rows, err := s.productRepo.Delete(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if rows == 0 {
		return apierr.NotFound("product not found")
	}
	s.invalidate(ctx)
	s.activity.Record(ctx, actorID, "product.deleted", "product", id, nil)
	return nil
}

func (s *catalogService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
