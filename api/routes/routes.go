package routes

import (
	"net/http"

	"github.com/fidelease/fidelease-backend/internal/config"
	"github.com/fidelease/fidelease-backend/internal/handlers"
	"github.com/fidelease/fidelease-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies groups the handlers the router needs
type HandlerDependencies struct {
	AuthHandler       *handlers.AuthHandler
	UserHandler       *handlers.UserHandler
	ProductHandler    *handlers.ProductHandler
	CategoryHandler   *handlers.CategoryHandler
	GiftHandler       *handlers.GiftHandler
	SaleHandler       *handlers.SaleHandler
	RedemptionHandler *handlers.RedemptionHandler
	MessageHandler    *handlers.MessageHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	// Create router
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	// Protected routes for any authenticated user
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		// Routes for the logged-in account
		protected.GET("/me", deps.AuthHandler.Me)
		protected.GET("/me/balance", deps.UserHandler.GetMyBalance)
		protected.GET("/me/history", deps.SaleHandler.GetMyHistory)
		protected.GET("/me/messages", deps.MessageHandler.GetMyMessages)

		// Messaging routes
		protected.POST("/messages", deps.MessageHandler.Send)

		// Catalog browsing routes
		protected.GET("/products", deps.ProductHandler.ListProducts)
		protected.GET("/products/:id", deps.ProductHandler.GetProduct)
		protected.GET("/categories", deps.CategoryHandler.ListCategories)
		protected.GET("/gifts", deps.GiftHandler.ListGifts)
		protected.GET("/gifts/:id", deps.GiftHandler.GetGift)

		// Redemption routes
		protected.POST("/gifts/:id/redeem", deps.RedemptionHandler.RedeemGift)
	}

	// Staff-only routes
	admin := router.Group("/api/v1")
	admin.Use(middleware.JWTAuthMiddleware(cfg))
	admin.Use(middleware.StaffOnlyMiddleware())
	{
		// Catalog management routes
		admin.POST("/products", deps.ProductHandler.CreateProduct)
		admin.PUT("/products/:id", deps.ProductHandler.UpdateProduct)
		admin.DELETE("/products/:id", deps.ProductHandler.DeleteProduct)
		admin.POST("/categories", deps.CategoryHandler.CreateCategory)
		admin.DELETE("/categories/:id", deps.CategoryHandler.DeleteCategory)
		admin.POST("/gifts", deps.GiftHandler.CreateGift)
		admin.PUT("/gifts/:id", deps.GiftHandler.UpdateGift)
		admin.DELETE("/gifts/:id", deps.GiftHandler.DeleteGift)

		// Cash register routes
		admin.POST("/caisse", deps.SaleHandler.RingUp)
		admin.GET("/factures", deps.SaleHandler.ListFactures)
		admin.GET("/factures/:id", deps.SaleHandler.GetFacture)

		// Code scanner route
		admin.POST("/codes/scan", deps.RedemptionHandler.ScanCode)

		// Staff view of a customer conversation
		admin.GET("/messages/with/:id", deps.MessageHandler.GetThread)

		// User administration routes
		users := admin.Group("/users")
		{
			users.GET("", deps.UserHandler.GetAllUsers)
			users.GET("/count", deps.UserHandler.GetUserCount)
			users.GET("/:id", deps.UserHandler.GetUserByID)
			users.GET("/username/:username", deps.UserHandler.GetUserByUsername)
		}
	}

	return router
}
