package controllers

import (
	"net/http"
	"time"

	"swiftaid/models"
	"swiftaid/services"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	healthService *services.HealthService
}

func NewHealthController(healthService *services.HealthService) *HealthController {
	return &HealthController{
		healthService: healthService,
	}
}

// HealthCheck reports database connectivity
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 500 {object} models.HealthResponse
// @Router /health [get]
func (hc *HealthController) HealthCheck(c *gin.Context) {
	response, healthy := hc.healthService.Check(c.Request.Context())
	if !healthy {
		c.JSON(http.StatusInternalServerError, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Test is a liveness echo.
func (hc *HealthController) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Backend is working!",
		"timestamp": models.FormatISO(time.Now()),
	})
}
