package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every mutation responds with a nullable result plus an errors array, so
// callers always read failures from the same place regardless of status.

func RespondOK(c *gin.Context, payload gin.H) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload gin.H) {
	c.JSON(http.StatusCreated, payload)
}
