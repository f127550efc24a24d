package handlers

import (
	"net/http"

	intconfig "railbooking/internal/config"

	"github.com/gin-gonic/gin"
)

// GET /api/health
func Health(c *gin.Context) {
	db := "memory"
	if intconfig.DB != nil {
		db = "mysql"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "store": db})
}
