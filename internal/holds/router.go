package holds

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupHoldRoutes(rg *gin.RouterGroup, controller *Controller) {
	holds := rg.Group("/holds")
	holds.Use(middleware.Identity())
	{
		holds.POST("", controller.CreateHold)                  // POST /api/v1/holds
		holds.GET("/:holdId", controller.GetHold)              // GET /api/v1/holds/:holdId
		holds.POST("/:holdId/release", controller.ReleaseHold) // POST /api/v1/holds/:holdId/release
	}
}
