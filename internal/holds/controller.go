package holds

import (
	"net/http"

	"cinebook/internal/shared/middleware"
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

func (c *Controller) CreateHold(ctx *gin.Context) {
	var req CreateHoldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	hold, err := c.service.CreateHold(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Hold created successfully", hold, nil)
}

func (c *Controller) GetHold(ctx *gin.Context) {
	holdID := ctx.Param("holdId")
	if _, err := uuid.Parse(holdID); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid hold ID format", nil, nil)
		return
	}

	hold, err := c.service.GetHold(ctx.Request.Context(), middleware.UserID(ctx), holdID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hold retrieved successfully", hold, nil)
}

func (c *Controller) ReleaseHold(ctx *gin.Context) {
	holdID := ctx.Param("holdId")
	if _, err := uuid.Parse(holdID); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid hold ID format", nil, nil)
		return
	}

	result, err := c.service.ReleaseHold(ctx.Request.Context(), middleware.UserID(ctx), holdID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hold released successfully", result, nil)
}
