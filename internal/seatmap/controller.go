package seatmap

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

func (c *Controller) GetSeatmap(ctx *gin.Context) {
	showID := ctx.Param("showId")
	if _, err := uuid.Parse(showID); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid show ID format", nil, nil)
		return
	}

	seatmap, err := c.service.GetSeatmap(ctx.Request.Context(), showID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seatmap retrieved successfully", seatmap, nil)
}
