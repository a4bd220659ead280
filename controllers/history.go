package controllers

import (
	"net/http"

	"stuffhappens/middleware"

	"github.com/gin-gonic/gin"
)

// GetHistory returns the caller's past games with their full card trails.
func GetHistory(c *gin.Context) {
	games, err := history.ForUser(middleware.UserID(c))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}
