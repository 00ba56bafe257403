package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/apierr"
	"github.com/yungbote/storefront-backend/internal/services"
)

type WishlistHandler struct {
	wishlistService services.WishlistService
}

func NewWishlistHandler(wishlistService services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

type addWishlistItemInput struct {
	ProductID string `json:"productId"`
}

func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	entries, err := h.wishlistService.GetWishlist(c.Request.Context(), callerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, entries)
}

func (h *WishlistHandler) AddItem(c *gin.Context) {
	var input addWishlistItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apierr.Validation("invalid request body"))
		return
	}
	entry, err := h.wishlistService.AddItem(c.Request.Context(), callerID(c), input.ProductID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, entry)
}

func (h *WishlistHandler) RemoveItem(c *gin.Context) {
	productID := c.Param("productId")
	if err := h.wishlistService.RemoveItem(c.Request.Context(), callerID(c), productID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "removed from wishlist", "productId": productID})
}

func (h *WishlistHandler) Clear(c *gin.Context) {
	if err := h.wishlistService.Clear(c.Request.Context(), callerID(c)); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "wishlist cleared"})
}
