// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"cinebook/internal/holds"
	"cinebook/internal/notifications"
	"cinebook/internal/orders"
	"cinebook/internal/seatlock"
	"cinebook/internal/seatmap"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/shows"
	"cinebook/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	locks     *seatlock.Coordinator
	publisher notifications.Publisher

	// shared across feature routers
	showRepo   shows.Repository
	seatmapSvc seatmap.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, locks *seatlock.Coordinator, publisher notifications.Publisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		locks:     locks,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// Shared dependencies for the booking features
	r.showRepo = shows.NewRepository(r.db.GetPostgreSQL())
	cacheService := cache.NewService(r.db.GetRedisClient())
	r.seatmapSvc = seatmap.NewService(r.showRepo, r.locks, cacheService, r.config.Booking)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupShowRoutes(api)
		r.setupSeatmapRoutes(api)
		r.setupHoldRoutes(api)
		r.setupOrderRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "cinebook-core",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinebook-core",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupShowRoutes configures show lookup routes
func (r *Router) setupShowRoutes(rg *gin.RouterGroup) {
	showService := shows.NewService(r.showRepo)
	showController := shows.NewController(showService)

	shows.SetupShowRoutes(rg, showController)
}

// setupSeatmapRoutes configures the availability projection routes
func (r *Router) setupSeatmapRoutes(rg *gin.RouterGroup) {
	seatmapController := seatmap.NewController(r.seatmapSvc)

	seatmap.SetupSeatmapRoutes(rg, seatmapController)
}

// setupHoldRoutes configures the hold lifecycle routes
func (r *Router) setupHoldRoutes(rg *gin.RouterGroup) {
	holdService := holds.NewService(r.locks, r.showRepo, r.seatmapSvc, r.publisher, r.config.Booking)
	holdController := holds.NewController(holdService)

	holds.SetupHoldRoutes(rg, holdController)
}

// setupOrderRoutes configures the order lifecycle routes
func (r *Router) setupOrderRoutes(rg *gin.RouterGroup) {
	orderRepo := orders.NewRepository(r.db.GetPostgreSQL())
	orderService := orders.NewService(orderRepo, r.locks, r.showRepo, r.seatmapSvc, r.publisher, r.config.Booking)
	orderController := orders.NewController(orderService)

	orders.SetupOrderRoutes(rg, orderController)
}
