package seatmap

import (
	"github.com/gin-gonic/gin"
)

func SetupSeatmapRoutes(rg *gin.RouterGroup, controller *Controller) {
	shows := rg.Group("/shows")
	{
		shows.GET("/:showId/seatmap", controller.GetSeatmap) // GET /api/v1/shows/:showId/seatmap
	}
}
