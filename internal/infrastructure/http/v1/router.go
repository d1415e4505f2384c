// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"makhzan/internal/domain/catalogs/category"
	"makhzan/internal/domain/catalogs/item"
	"makhzan/internal/domain/catalogs/location"
	"makhzan/internal/domain/ledger"
	"makhzan/internal/infrastructure/http/v1/handlers"
	"makhzan/internal/infrastructure/http/v1/middleware"
	"makhzan/internal/infrastructure/storage/postgres"
	"makhzan/pkg/logger"
)

// RouterConfig holds the wired services the router exposes.
type RouterConfig struct {
	Pool *postgres.Pool

	Logger *logger.Logger

	Engine  *ledger.Engine
	Archive *postgres.ArchiveStore

	LedgerService   *ledger.Service
	CategoryService *category.Service
	LocationService *location.Service
	ItemService     *item.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	base := handlers.NewBaseHandler()
	importHandler := handlers.NewImportHandler(base, cfg.Engine, cfg.Archive)
	stockHandler := handlers.NewStockHandler(base, cfg.LedgerService)
	categoryHandler := handlers.NewCategoryHandler(base, cfg.CategoryService)
	locationHandler := handlers.NewLocationHandler(base, cfg.LocationService)
	itemHandler := handlers.NewItemHandler(base, cfg.ItemService)

	api := router.Group("/api/v1")
	{
		imp := api.Group("/import")
		{
			imp.POST("/upload", importHandler.Upload)
			imp.POST("/validate", importHandler.Validate)
			imp.POST("/commit", importHandler.Commit)
			imp.GET("/files", importHandler.ListFiles)
			imp.GET("/files/:id", importHandler.DownloadFile)
		}

		stock := api.Group("/stock")
		{
			stock.GET("/items/:id", stockHandler.ItemStock)
			stock.GET("/locations/:id", stockHandler.LocationStock)
		}

		api.GET("/movements", stockHandler.ListMovements)
		api.POST("/movements", stockHandler.PostMovement)

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", categoryHandler.Create)
			categories.GET("/:id", categoryHandler.Get)
			categories.PUT("/:id", categoryHandler.Update)
			categories.DELETE("/:id", categoryHandler.Delete)
			categories.GET("/:id/subcategories", categoryHandler.ListSubcategories)
			categories.POST("/:id/subcategories", categoryHandler.CreateSubcategory)
		}
		api.DELETE("/subcategories/:id", categoryHandler.DeleteSubcategory)

		locations := api.Group("/locations")
		{
			locations.GET("", locationHandler.List)
			locations.POST("", locationHandler.Create)
			locations.GET("/:id", locationHandler.Get)
			locations.PUT("/:id", locationHandler.Update)
			locations.DELETE("/:id", locationHandler.Delete)
		}

		items := api.Group("/items")
		{
			items.GET("", itemHandler.List)
			items.POST("", itemHandler.Create)
			items.GET("/:id", itemHandler.Get)
			items.PUT("/:id", itemHandler.Update)
			items.DELETE("/:id", itemHandler.Delete)
		}
	}

	return router
}
