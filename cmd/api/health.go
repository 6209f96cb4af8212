package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse reports service and dependency status
type HealthResponse struct {
	Status       string `json:"status" example:"ok"`
	Database     string `json:"database" example:"ok"`
	Optimization bool   `json:"optimization_available" example:"true"`
}

// handleHealth godoc
// @Summary Health check
// @Description Check API, database and optimizer availability
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (app *App) handleHealth(c *gin.Context) {
	resp := HealthResponse{
		Status:       "ok",
		Database:     "ok",
		Optimization: app.optimizer != nil,
	}

	if err := app.db.PingContext(c.Request.Context()); err != nil {
		app.logger.Error("database ping failed", "error", err)
		resp.Status = "degraded"
		resp.Database = "unavailable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}
