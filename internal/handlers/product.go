package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/apierr"
	"github.com/yungbote/storefront-backend/internal/services"
	"github.com/yungbote/storefront-backend/internal/types"
)

type ProductHandler struct {
	catalogService services.CatalogService
}

func NewProductHandler(catalogService services.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

type createProductInput struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Type        string   `json:"type"`
	Brand       *string  `json:"brand"`
	SKU         *string  `json:"sku"`
	Price       *float64 `json:"price"`
	OldPrice    *float64 `json:"oldPrice"`
	Rating      *float64 `json:"rating"`
	Badge       *string  `json:"badge"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Stock       *int     `json:"stock"`
	IsActive    *bool    `json:"isActive"`
}

type updateProductInput struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Type        *string  `json:"type"`
	Brand       *string  `json:"brand"`
	SKU         *string  `json:"sku"`
	Price       *float64 `json:"price"`
	OldPrice    *float64 `json:"oldPrice"`
	Rating      *float64 `json:"rating"`
	Badge       *string  `json:"badge"`
	Image       *string  `json:"image"`
	Description *string  `json:"description"`
	Stock       *int     `json:"stock"`
	IsActive    *bool    `json:"isActive"`
}

func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter := types.ProductFilter{
		Search:   c.Query("search"),
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Active:   c.Query("active"),
		Sort:     c.Query("sort"),
		Page:     page,
		Limit:    limit,
	}
	result, err := h.catalogService.List(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	product, err := h.catalogService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var input createProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		// covers non-numeric price and other type mismatches
		RespondError(c, apierr.Validation("invalid request body"))
		return
	}
	if input.Price == nil {
		RespondError(c, apierr.Validation("price is required"))
		return
	}
	product, err := h.catalogService.Create(c.Request.Context(), callerID(c), services.CreateProductInput{
		Name:        input.Name,
		Category:    input.Category,
		Type:        input.Type,
		Brand:       input.Brand,
		SKU:         input.SKU,
		Price:       *input.Price,
		OldPrice:    input.OldPrice,
		Rating:      input.Rating,
		Badge:       input.Badge,
		Image:       input.Image,
		Description: input.Description,
		Stock:       input.Stock,
		IsActive:    input.IsActive,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var input updateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apierr.Validation("invalid request body"))
		return
	}
	product, err := h.catalogService.Update(c.Request.Context(), callerID(c), c.Param("id"), services.UpdateProductInput{
		Name:        input.Name,
		Category:    input.Category,
		Type:        input.Type,
		Brand:       input.Brand,
		SKU:         input.SKU,
		Price:       input.Price,
		OldPrice:    input.OldPrice,
		Rating:      input.Rating,
		Badge:       input.Badge,
		Image:       input.Image,
		Description: input.Description,
		Stock:       input.Stock,
		IsActive:    input.IsActive,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, product)
}

func (h *ProductHandler) ToggleActive(c *gin.Context) {
	product, err := h.catalogService.ToggleActive(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.catalogService.Delete(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "product deleted"})
}
