package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"stuffhappens/middleware"
	"stuffhappens/models"
	"stuffhappens/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ownedGame parses :id and checks the game belongs to the caller.
func ownedGame(c *gin.Context) (*models.Game, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game id"})
		return nil, false
	}

	var game models.Game
	if err := db.First(&game, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}
	if game.UserID != middleware.UserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your game"})
		return nil, false
	}
	return &game, true
}

// GetGame returns the game header plus the player's current hand.
func GetGame(c *gin.Context) {
	game, ok := ownedGame(c)
	if !ok {
		return
	}

	hand, err := engine.CurrentHand(game.ID)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": game, "hand": hand})
}

// StartGame deals a new game for the authenticated user.
func StartGame(c *gin.Context) {
	result, err := engine.StartGame(middleware.UserID(c))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// NextRoundCard draws the candidate card for the next round, index hidden.
func NextRoundCard(c *gin.Context) {
	game, ok := ownedGame(c)
	if !ok {
		return
	}

	card, err := engine.NextRoundCard(game.ID)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

type guessRequest struct {
	CardID         uint                `json:"card_id" binding:"required"`
	RoundNumber    int                 `json:"round_number" binding:"required,min=1"`
	PlacementIndex *int                `json:"placement_index" binding:"required"`
	Hand           []services.HandCard `json:"hand" binding:"required"`
}

// SubmitGuess resolves the player's placement for the current round.
func SubmitGuess(c *gin.Context) {
	game, ok := ownedGame(c)
	if !ok {
		return
	}

	var req guessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := engine.ResolveGuess(game.ID, req.CardID, req.Hand, *req.PlacementIndex, req.RoundNumber)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type timeoutRequest struct {
	CardID      uint `json:"card_id" binding:"required"`
	RoundNumber int  `json:"round_number" binding:"required,min=1"`
}

// SubmitTimeout records a round the client timer let expire.
func SubmitTimeout(c *gin.Context) {
	game, ok := ownedGame(c)
	if !ok {
		return
	}

	var req timeoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := engine.ResolveTimeout(game.ID, req.CardID, req.RoundNumber)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type endGameRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=won lost"`
}

// EndGame force-terminates a stuck game (catalog exhausted mid-game).
func EndGame(c *gin.Context) {
	game, ok := ownedGame(c)
	if !ok {
		return
	}

	var req endGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := engine.EndGame(game.ID, req.Outcome); err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game_id": game.ID, "outcome": req.Outcome})
}
