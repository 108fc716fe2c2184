package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/crm-backend/internal/handlers"
)

type RouterConfig struct {
	CustomerHandler  *handlers.CustomerHandler
	ProductHandler   *handlers.ProductHandler
	OrderHandler     *handlers.OrderHandler
	InventoryHandler *handlers.InventoryHandler
	ReportHandler    *handlers.ReportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Customers
		api.POST("/customers", cfg.CustomerHandler.Create)
		api.POST("/customers/bulk", cfg.CustomerHandler.BulkCreate)
		api.GET("/customers", cfg.CustomerHandler.List)
		// Products
		api.POST("/products", cfg.ProductHandler.Create)
		api.POST("/products/restock", cfg.InventoryHandler.RestockLowStock)
		api.GET("/products", cfg.ProductHandler.List)
		// Orders
		api.POST("/orders", cfg.OrderHandler.Create)
		api.GET("/orders", cfg.OrderHandler.List)
		// Reports
		api.GET("/stats", cfg.ReportHandler.Stats)
	}

	return router
}
