package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/apierr"
	"github.com/yungbote/storefront-backend/internal/requestdata"
	"github.com/yungbote/storefront-backend/internal/services"
)

type CartHandler struct {
	cartService services.CartService
}

func NewCartHandler(cartService services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type addCartItemInput struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type updateCartItemInput struct {
	Quantity *int `json:"quantity"`
}

func callerID(c *gin.Context) string {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		return ""
	}
	return rd.UserID
}

func (h *CartHandler) GetCart(c *gin.Context) {
	summary, err := h.cartService.GetSummary(c.Request.Context(), callerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, summary)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var input addCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apierr.Validation("invalid request body"))
		return
	}
	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}

	summary, raced, err := h.cartService.AddItem(c.Request.Context(), callerID(c), input.ProductID, quantity)
	if err != nil {
		RespondError(c, err)
		return
	}
	if raced {
		// a concurrent add won; the summary is already consistent
		c.JSON(http.StatusConflict, summary)
		return
	}
	RespondCreated(c, summary)
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	var input updateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Quantity == nil {
		RespondError(c, apierr.Validation("quantity is required"))
		return
	}
	summary, err := h.cartService.UpdateQuantity(c.Request.Context(), callerID(c), c.Param("id"), *input.Quantity)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, summary)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	summary, err := h.cartService.RemoveItem(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, summary)
}

func (h *CartHandler) Clear(c *gin.Context) {
	summary, err := h.cartService.Clear(c.Request.Context(), callerID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, summary)
}
