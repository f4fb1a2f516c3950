package orders

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

func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	order, err := c.service.CreateOrder(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Order created successfully", order, nil)
}

func (c *Controller) GetOrder(ctx *gin.Context) {
	orderID := ctx.Param("orderId")
	if _, err := uuid.Parse(orderID); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid order ID format", nil, nil)
		return
	}

	order, err := c.service.GetOrder(ctx.Request.Context(), middleware.UserID(ctx), orderID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Order retrieved successfully", order, nil)
}

func (c *Controller) ConfirmPayment(ctx *gin.Context) {
	orderID := ctx.Param("orderId")
	if _, err := uuid.Parse(orderID); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid order ID format", nil, nil)
		return
	}

	order, err := c.service.ConfirmPayment(ctx.Request.Context(), middleware.UserID(ctx), orderID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment confirmed successfully", order, nil)
}
