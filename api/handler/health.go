package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/kanoon/models"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "Indian Kanoon Scraper"

// Health returns a handler for GET /health.
// No browser is started.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:  "healthy",
			Service: ServiceName,
		})
	}
}

// Preflight returns a handler for OPTIONS /scrape.
func Preflight() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	}
}
