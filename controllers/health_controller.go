package controllers

import (
	"net/http"

	"tutorhub/internal/health"

	"github.com/gin-gonic/gin"
)

// HealthController reports dependency health state.
type HealthController struct {
	state *health.State
}

// NewHealthController creates the controller.
func NewHealthController(state *health.State) *HealthController {
	return &HealthController{state: state}
}

// GetHealth handles GET /health
func (hc *HealthController) GetHealth(c *gin.Context) {
	report := hc.state.Snapshot()

	status := http.StatusOK
	if report.Degraded {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"dependencies": report})
}
