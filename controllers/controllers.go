package controllers

import (
	"errors"
	"net/http"

	"stuffhappens/services"
	"stuffhappens/storage"
	"stuffhappens/utils/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	db         *gorm.DB
	engine     *services.Engine
	demoEngine *services.DemoEngine
	history    *services.HistoryService
)

// Init wires the engines to the gorm-backed store. Must run before any
// route is served.
func Init(database *gorm.DB) {
	db = database
	store := storage.New(database)
	engine = services.NewEngine(store, store)
	demoEngine = services.NewDemoEngine(store)
	history = services.NewHistoryService(store)
	logger.Infof("[Init] game engine ready")
}

// respondEngineError translates engine sentinels into HTTP statuses.
func respondEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGameNotFound),
		errors.Is(err, services.ErrCardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidPlacement):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrGameFinished),
		errors.Is(err, services.ErrRoundResolved),
		errors.Is(err, services.ErrNoCardsRemaining),
		errors.Is(err, services.ErrInsufficientCards):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Errorf("engine error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
