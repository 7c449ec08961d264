// Package api contains the HTTP handlers and routing for the checkout service.
package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures the Gin router with all routes and middleware.
func SetupRouter(handler *Handler, ginMode string) *gin.Engine {
	gin.SetMode(ginMode)

	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"},
		MaxAge:          12 * time.Hour,
	}))

	// Health check endpoint (no auth required)
	router.GET("/health", handler.Health)

	payment := router.Group("/api/payment")
	{
		payment.POST("/create-preference", handler.CreatePreference)

		// Called by Mercado Pago; security is the x-signature validation.
		payment.POST("/webhook", handler.HandleWebhook)
	}

	return router
}
