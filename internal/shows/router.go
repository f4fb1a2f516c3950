package shows

import (
	"github.com/gin-gonic/gin"
)

func SetupShowRoutes(rg *gin.RouterGroup, controller *Controller) {
	shows := rg.Group("/shows")
	{
		shows.GET("/:showId", controller.GetShow) // GET /api/v1/shows/:showId
	}
}
