// Package api contains the HTTP handlers and routing for the storefront service.
package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter configures the Gin router with all routes and middleware.
func SetupRouter(handler *Handler, ginMode string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(ginMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))
	router.Use(CORSMiddleware())
	router.Use(RequestIDMiddleware())

	// Health check endpoint
	router.GET("/health", handler.Health)

	// Storefront API routes; no authentication anywhere - the config
	// provider intentionally serves the storefront token to the page.
	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/config/shopify", handler.GetStoreConfig)
		apiGroup.GET("/catalog", handler.GetCatalog)
		apiGroup.POST("/checkout", handler.CreateCheckout)
	}

	return router
}
