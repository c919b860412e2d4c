package main

import (
	"log"
	"tripsettle-backend/config"
	"tripsettle-backend/database"
	"tripsettle-backend/handlers"
	"tripsettle-backend/middleware"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.Load()

	// Connect to database
	database.Connect()

	// Connect to Redis (optional, won't crash if unavailable)
	database.ConnectRedis()

	// Setup router
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": config.AppConfig.AppName,
		})
	})

	// ==========================================
	// AUTH ROUTES (public)
	// ==========================================
	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}

	// ==========================================
	// API ROUTES (authenticated)
	// ==========================================
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		// User
		api.GET("/users/me", handlers.GetProfile)
		api.PUT("/users/me", handlers.UpdateProfile)
		api.PUT("/users/me/fcm-token", handlers.UpdateFCMToken)
		api.POST("/users/search", handlers.SearchUsers)

		// Trips
		api.POST("/trips", handlers.CreateTrip)
		api.GET("/trips", handlers.GetTrips)
		api.GET("/trips/:id", handlers.GetTrip)
		api.PUT("/trips/:id", handlers.UpdateTrip)
		api.POST("/trips/:id/members", handlers.AddMember)
		api.DELETE("/trips/:id/members/:uid", handlers.RemoveMember)
		api.POST("/trips/:id/invite", handlers.InviteToTripHandler)

		// Transactions
		api.POST("/trips/:id/transactions", handlers.CreateTransaction)
		api.GET("/trips/:id/transactions", handlers.GetTripTransactions)
		api.PUT("/transactions/:id", handlers.UpdateTransaction)
		api.DELETE("/transactions/:id", handlers.DeleteTransaction)

		// Repayments
		api.POST("/trips/:id/repayments", handlers.CreateRepayment)
		api.GET("/trips/:id/repayments", handlers.GetTripRepayments)
		api.DELETE("/repayments/:id", handlers.DeleteRepayment)

		// Exchange rates
		api.GET("/trips/:id/rates", handlers.GetTripRates)
		api.PUT("/trips/:id/rates", handlers.UpsertTripRates)

		// Settlement
		api.GET("/trips/:id/settlement", handlers.GetTripSettlement)
		api.GET("/trips/:id/lodging", handlers.GetTripLodgingSummary)

		// Import / export
		api.GET("/trips/:id/export", handlers.ExportTransactions)
		api.POST("/trips/:id/import", handlers.ImportTransactions)

		// Activity
		api.GET("/activity", handlers.GetActivity)
		api.GET("/trips/:id/activity", handlers.GetTripActivity)
	}

	// Start server
	port := config.AppConfig.Port
	log.Printf("🚀 %s server starting on port %s", config.AppConfig.AppName, port)

	addr := "0.0.0.0:" + port
	log.Printf("🚀 Listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
