package shows

import (
	"net/http"

	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) GetShow(ctx *gin.Context) {
	showID := ctx.Param("showId")
	if _, err := uuid.Parse(showID); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid show ID format", nil, nil)
		return
	}

	details, err := c.service.GetShow(ctx.Request.Context(), showID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Show retrieved successfully", details, nil)
}
