package routes

import (
	"stuffhappens/controllers"
	"stuffhappens/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// ----------------------
	// Auth routes
	// ----------------------
	api.POST("/register", controllers.Register)
	api.POST("/login", controllers.Login)

	// ----------------------
	// Demo routes (unauthenticated, one round, nothing persisted)
	// ----------------------
	api.GET("/demo", controllers.StartDemo)
	api.POST("/demo/guess", controllers.DemoGuess)

	// ----------------------
	// Game routes (authenticated)
	// ----------------------
	game := api.Group("/")
	game.Use(middleware.Auth())
	game.POST("/games", controllers.StartGame) // Start a new game
	game.GET("/games/:id", controllers.GetGame)
	game.GET("/games/:id/next-card", controllers.NextRoundCard)
	game.POST("/games/:id/guess", controllers.SubmitGuess)
	game.POST("/games/:id/timeout", controllers.SubmitTimeout)
	game.POST("/games/:id/end", controllers.EndGame) // Force-end a stuck game
	game.GET("/history", controllers.GetHistory)
}
