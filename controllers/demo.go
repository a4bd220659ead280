package controllers

import (
	"net/http"

	"stuffhappens/services"

	"github.com/gin-gonic/gin"
)

// StartDemo deals the unauthenticated one-round trial game.
func StartDemo(c *gin.Context) {
	result, err := demoEngine.Start()
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type demoGuessRequest struct {
	CardID         uint                `json:"card_id" binding:"required"`
	PlacementIndex *int                `json:"placement_index" binding:"required"`
	Hand           []services.HandCard `json:"hand" binding:"required"`
}

// DemoGuess resolves the demo round. Nothing is persisted.
func DemoGuess(c *gin.Context) {
	var req demoGuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := demoEngine.ResolveGuess(req.Hand, req.CardID, *req.PlacementIndex)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
