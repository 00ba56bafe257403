package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/services"
)

type ActivityHandler struct {
	activityService services.ActivityService
}

func NewActivityHandler(activityService services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	events, err := h.activityService.List(c.Request.Context(), callerID(c), limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, events)
}
