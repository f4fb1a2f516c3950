package orders

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(rg *gin.RouterGroup, controller *Controller) {
	orders := rg.Group("/orders")
	orders.Use(middleware.Identity())
	{
		orders.POST("", controller.CreateOrder)                             // POST /api/v1/orders
		orders.GET("/:orderId", controller.GetOrder)                        // GET /api/v1/orders/:orderId
		orders.POST("/:orderId/confirm-payment", controller.ConfirmPayment) // POST /api/v1/orders/:orderId/confirm-payment
	}
}
